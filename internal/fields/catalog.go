package fields

// ============================================
// Category Catalog
// ============================================

var categoryInfos = []CategoryInfo{
	{Value: CategoryWeb, Label: "Web Application", Description: "Websites, web apps and browser-based tools"},
	{Value: CategoryMobile, Label: "Mobile App", Description: "Native or cross-platform apps for iOS and Android"},
	{Value: CategoryDesktop, Label: "Desktop Application", Description: "Software for Windows, macOS or Linux"},
	{Value: CategoryBackend, Label: "Backend / API", Description: "Servers, APIs and microservices"},
	{Value: CategoryCLI, Label: "CLI Tool", Description: "Command-line utilities and terminal apps"},
	{Value: CategoryLibrary, Label: "Library / Package", Description: "Reusable packages published to a registry"},
	{Value: CategoryGame, Label: "Game", Description: "Games and interactive experiences"},
	{Value: CategoryAIML, Label: "AI / Machine Learning", Description: "Models, training pipelines and AI-powered apps"},
	{Value: CategoryData, Label: "Data / Analytics", Description: "Data pipelines, dashboards and analysis"},
	{Value: CategoryDevOps, Label: "DevOps / Infrastructure", Description: "CI/CD, infrastructure as code and tooling"},
	{Value: CategoryEmbedded, Label: "Embedded / IoT", Description: "Firmware, microcontrollers and connected devices"},
	{Value: CategoryBlockchain, Label: "Blockchain / Web3", Description: "Smart contracts, dApps and wallets"},
	{Value: CategoryOther, Label: "Other", Description: "Anything that does not fit the categories above"},
}

func options(pairs ...string) []FieldOption {
	out := make([]FieldOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, FieldOption{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

var commonFields = []FieldDefinition{
	{
		ID:          "projectStatus",
		Label:       "Project Status",
		Type:        FieldTypeSelect,
		IsCommon:    true,
		Description: "Where the project currently stands",
		Options: options(
			"idea", "Idea",
			"in-progress", "In Progress",
			"beta", "Beta",
			"released", "Released",
			"maintained", "Actively Maintained",
			"archived", "Archived",
		),
	},
	{
		ID:          "techStack",
		Label:       "Tech Stack",
		Type:        FieldTypeText,
		IsCommon:    true,
		MaxLength:   200,
		Placeholder: "e.g. React, Node.js, PostgreSQL",
		Description: "Main languages, frameworks and services used",
	},
	{
		ID:          "repositoryUrl",
		Label:       "Repository URL",
		Type:        FieldTypeURL,
		IsCommon:    true,
		MaxLength:   500,
		Placeholder: "https://github.com/you/project",
	},
	{
		ID:          "demoUrl",
		Label:       "Live Demo URL",
		Type:        FieldTypeURL,
		IsCommon:    true,
		MaxLength:   500,
		Placeholder: "https://",
	},
	{
		ID:          "documentationUrl",
		Label:       "Documentation URL",
		Type:        FieldTypeURL,
		IsCommon:    true,
		MaxLength:   500,
		Placeholder: "https://",
	},
	{
		ID:       "license",
		Label:    "License",
		Type:     FieldTypeSelect,
		IsCommon: true,
		Options: options(
			"mit", "MIT",
			"apache-2.0", "Apache 2.0",
			"gpl-3.0", "GPL 3.0",
			"bsd-3-clause", "BSD 3-Clause",
			"mpl-2.0", "MPL 2.0",
			"unlicense", "Unlicense",
			"proprietary", "Proprietary",
			"other", "Other",
		),
	},
	{
		ID:          "teamSize",
		Label:       "Team Size",
		Type:        FieldTypeNumber,
		IsCommon:    true,
		Placeholder: "1",
		Description: "Number of people who built the project",
	},
	{
		ID:          "challenges",
		Label:       "Challenges",
		Type:        FieldTypeTextarea,
		IsCommon:    true,
		MaxLength:   2000,
		Placeholder: "What was hard, and how did you solve it?",
	},
	{
		ID:          "lessonsLearned",
		Label:       "Lessons Learned",
		Type:        FieldTypeTextarea,
		IsCommon:    true,
		MaxLength:   2000,
		Placeholder: "What would you do differently next time?",
	},
}

var specificFields = map[Category][]FieldDefinition{
	CategoryWeb: {
		{
			ID:    "frontendFramework",
			Label: "Frontend Framework",
			Type:  FieldTypeSelect,
			Options: options(
				"react", "React",
				"nextjs", "Next.js",
				"vue", "Vue",
				"nuxt", "Nuxt",
				"angular", "Angular",
				"svelte", "Svelte",
				"solid", "SolidJS",
				"vanilla", "Vanilla JS",
				"other", "Other",
			),
		},
		{
			ID:    "browserSupport",
			Label: "Browser Support",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"chrome", "Chrome",
				"firefox", "Firefox",
				"safari", "Safari",
				"edge", "Edge",
				"opera", "Opera",
			),
		},
		{
			ID:    "hostingPlatform",
			Label: "Hosting Platform",
			Type:  FieldTypeSelect,
			Options: options(
				"vercel", "Vercel",
				"netlify", "Netlify",
				"cloudflare", "Cloudflare Pages",
				"aws", "AWS",
				"gcp", "Google Cloud",
				"azure", "Azure",
				"self-hosted", "Self-hosted",
				"other", "Other",
			),
		},
		{
			ID:    "responsiveDesign",
			Label: "Responsive Design",
			Type:  FieldTypeSelect,
			Options: options(
				"full", "Fully responsive",
				"partial", "Partially responsive",
				"desktop-only", "Desktop only",
			),
		},
		{
			ID:          "lighthouseScore",
			Label:       "Lighthouse Score",
			Type:        FieldTypeNumber,
			Placeholder: "0-100",
		},
	},
	CategoryMobile: {
		{
			ID:    "mobilePlatforms",
			Label: "Platforms",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"ios", "iOS",
				"android", "Android",
				"ipados", "iPadOS",
				"wearos", "Wear OS",
				"watchos", "watchOS",
			),
		},
		{
			ID:    "mobileFramework",
			Label: "Mobile Framework",
			Type:  FieldTypeSelect,
			Options: options(
				"swift", "Swift / SwiftUI",
				"kotlin", "Kotlin / Jetpack Compose",
				"react-native", "React Native",
				"flutter", "Flutter",
				"ionic", "Ionic",
				"xamarin", "Xamarin / .NET MAUI",
				"other", "Other",
			),
		},
		{
			ID:          "appStoreUrl",
			Label:       "App Store URL",
			Type:        FieldTypeURL,
			MaxLength:   500,
			Placeholder: "https://apps.apple.com/",
		},
		{
			ID:          "playStoreUrl",
			Label:       "Play Store URL",
			Type:        FieldTypeURL,
			MaxLength:   500,
			Placeholder: "https://play.google.com/store/apps/",
		},
		{
			ID:          "minOsVersion",
			Label:       "Minimum OS Version",
			Type:        FieldTypeText,
			MaxLength:   50,
			Placeholder: "e.g. iOS 15, Android 10",
		},
		{
			ID:    "offlineSupport",
			Label: "Offline Support",
			Type:  FieldTypeSelect,
			Options: options(
				"full", "Full",
				"partial", "Partial",
				"none", "None",
			),
		},
	},
	CategoryDesktop: {
		{
			ID:    "desktopPlatforms",
			Label: "Operating Systems",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"windows", "Windows",
				"macos", "macOS",
				"linux", "Linux",
			),
		},
		{
			ID:    "desktopFramework",
			Label: "Desktop Framework",
			Type:  FieldTypeSelect,
			Options: options(
				"electron", "Electron",
				"tauri", "Tauri",
				"qt", "Qt",
				"wpf", "WPF",
				"gtk", "GTK",
				"swiftui", "SwiftUI / AppKit",
				"other", "Other",
			),
		},
		{
			ID:    "installerFormats",
			Label: "Installer Formats",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"msi", "MSI",
				"exe", "EXE",
				"dmg", "DMG",
				"appimage", "AppImage",
				"deb", "DEB",
				"rpm", "RPM",
				"flatpak", "Flatpak",
				"snap", "Snap",
			),
		},
		{
			ID:    "autoUpdate",
			Label: "Auto Update",
			Type:  FieldTypeSelect,
			Options: options(
				"yes", "Yes",
				"no", "No",
			),
		},
	},
	CategoryBackend: {
		{
			ID:    "apiStyle",
			Label: "API Style",
			Type:  FieldTypeSelect,
			Options: options(
				"rest", "REST",
				"graphql", "GraphQL",
				"grpc", "gRPC",
				"websocket", "WebSocket",
				"rpc", "JSON-RPC",
				"other", "Other",
			),
		},
		{
			ID:    "backendDatabases",
			Label: "Databases",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"postgresql", "PostgreSQL",
				"mysql", "MySQL",
				"sqlite", "SQLite",
				"mongodb", "MongoDB",
				"redis", "Redis",
				"dynamodb", "DynamoDB",
				"cassandra", "Cassandra",
				"elasticsearch", "Elasticsearch",
			),
		},
		{
			ID:    "deploymentTarget",
			Label: "Deployment Target",
			Type:  FieldTypeSelect,
			Options: options(
				"kubernetes", "Kubernetes",
				"serverless", "Serverless",
				"vm", "Virtual Machine",
				"paas", "PaaS (Heroku, Render, Fly.io)",
				"bare-metal", "Bare Metal",
			),
		},
		{
			ID:    "authMethod",
			Label: "Authentication",
			Type:  FieldTypeSelect,
			Options: options(
				"jwt", "JWT",
				"oauth2", "OAuth 2.0",
				"session", "Session cookies",
				"api-key", "API keys",
				"none", "None",
			),
		},
		{
			ID:          "requestsPerSecond",
			Label:       "Peak Requests / Second",
			Type:        FieldTypeNumber,
			Placeholder: "e.g. 500",
		},
	},
	CategoryCLI: {
		{
			ID:    "supportedShells",
			Label: "Supported Shells",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"bash", "Bash",
				"zsh", "Zsh",
				"fish", "Fish",
				"powershell", "PowerShell",
				"cmd", "Windows CMD",
			),
		},
		{
			ID:    "cliDistribution",
			Label: "Distribution",
			Type:  FieldTypeSelect,
			Options: options(
				"homebrew", "Homebrew",
				"npm", "npm",
				"cargo", "Cargo",
				"pip", "pip",
				"go-install", "go install",
				"binary", "Prebuilt binaries",
				"other", "Other",
			),
		},
		{
			ID:          "installCommand",
			Label:       "Install Command",
			Type:        FieldTypeText,
			MaxLength:   200,
			Placeholder: "brew install my-tool",
		},
		{
			ID:          "commandCount",
			Label:       "Number of Commands",
			Type:        FieldTypeNumber,
			Placeholder: "e.g. 12",
		},
	},
	CategoryLibrary: {
		{
			ID:    "packageRegistry",
			Label: "Package Registry",
			Type:  FieldTypeSelect,
			Options: options(
				"npm", "npm",
				"pypi", "PyPI",
				"crates", "crates.io",
				"maven", "Maven Central",
				"nuget", "NuGet",
				"go-modules", "Go modules",
				"rubygems", "RubyGems",
				"other", "Other",
			),
		},
		{
			ID:          "packageName",
			Label:       "Package Name",
			Type:        FieldTypeText,
			MaxLength:   100,
			Placeholder: "@scope/package",
		},
		{
			ID:          "apiReferenceUrl",
			Label:       "API Reference URL",
			Type:        FieldTypeURL,
			MaxLength:   500,
			Placeholder: "https://",
		},
		{
			ID:          "weeklyDownloads",
			Label:       "Weekly Downloads",
			Type:        FieldTypeNumber,
			Placeholder: "e.g. 1200",
		},
	},
	CategoryGame: {
		{
			ID:    "gameEngine",
			Label: "Game Engine",
			Type:  FieldTypeSelect,
			Options: options(
				"unity", "Unity",
				"unreal", "Unreal Engine",
				"godot", "Godot",
				"gamemaker", "GameMaker",
				"bevy", "Bevy",
				"custom", "Custom engine",
				"other", "Other",
			),
		},
		{
			ID:    "gameGenre",
			Label: "Genre",
			Type:  FieldTypeSelect,
			Options: options(
				"action", "Action",
				"adventure", "Adventure",
				"puzzle", "Puzzle",
				"rpg", "RPG",
				"strategy", "Strategy",
				"simulation", "Simulation",
				"platformer", "Platformer",
				"other", "Other",
			),
		},
		{
			ID:    "gamePlatforms",
			Label: "Platforms",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"pc", "PC",
				"web", "Web",
				"console", "Console",
				"mobile", "Mobile",
				"vr", "VR",
			),
		},
		{
			ID:    "playerMode",
			Label: "Player Mode",
			Type:  FieldTypeSelect,
			Options: options(
				"single", "Single-player",
				"local-multi", "Local multiplayer",
				"online-multi", "Online multiplayer",
			),
		},
		{
			ID:          "gameStoreUrl",
			Label:       "Store Page URL",
			Type:        FieldTypeURL,
			MaxLength:   500,
			Placeholder: "https://store.steampowered.com/ or https://itch.io/",
		},
	},
	CategoryAIML: {
		{
			ID:    "modelType",
			Label: "Model Type",
			Type:  FieldTypeSelect,
			Options: options(
				"llm", "Large Language Model",
				"vision", "Computer Vision",
				"classification", "Classification",
				"regression", "Regression",
				"recommendation", "Recommendation",
				"generative", "Generative (image/audio)",
				"reinforcement", "Reinforcement Learning",
				"other", "Other",
			),
		},
		{
			ID:    "mlFramework",
			Label: "ML Framework",
			Type:  FieldTypeSelect,
			Options: options(
				"pytorch", "PyTorch",
				"tensorflow", "TensorFlow",
				"jax", "JAX",
				"scikit-learn", "scikit-learn",
				"huggingface", "Hugging Face",
				"langchain", "LangChain",
				"other", "Other",
			),
		},
		{
			ID:          "datasetSource",
			Label:       "Dataset",
			Type:        FieldTypeText,
			MaxLength:   200,
			Placeholder: "e.g. ImageNet, custom scraped corpus",
		},
		{
			ID:          "modelAccuracy",
			Label:       "Accuracy (%)",
			Type:        FieldTypeNumber,
			Placeholder: "e.g. 94.5",
		},
		{
			ID:          "trainingHardware",
			Label:       "Training Hardware",
			Type:        FieldTypeText,
			MaxLength:   100,
			Placeholder: "e.g. 1x RTX 4090",
		},
	},
	CategoryData: {
		{
			ID:          "dataSources",
			Label:       "Data Sources",
			Type:        FieldTypeTextarea,
			MaxLength:   1000,
			Placeholder: "APIs, databases, files…",
		},
		{
			ID:          "dataVolume",
			Label:       "Data Volume",
			Type:        FieldTypeText,
			MaxLength:   50,
			Placeholder: "e.g. 2 TB/day",
		},
		{
			ID:    "pipelineTool",
			Label: "Pipeline Tool",
			Type:  FieldTypeSelect,
			Options: options(
				"airflow", "Airflow",
				"dagster", "Dagster",
				"dbt", "dbt",
				"spark", "Spark",
				"kafka", "Kafka",
				"custom", "Custom",
				"other", "Other",
			),
		},
		{
			ID:    "visualizationTool",
			Label: "Visualization",
			Type:  FieldTypeSelect,
			Options: options(
				"grafana", "Grafana",
				"metabase", "Metabase",
				"superset", "Superset",
				"tableau", "Tableau",
				"powerbi", "Power BI",
				"custom", "Custom",
				"none", "None",
			),
		},
	},
	CategoryDevOps: {
		{
			ID:    "cloudProviders",
			Label: "Cloud Providers",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"aws", "AWS",
				"gcp", "Google Cloud",
				"azure", "Azure",
				"digitalocean", "DigitalOcean",
				"hetzner", "Hetzner",
				"on-prem", "On-premises",
			),
		},
		{
			ID:    "iacTool",
			Label: "Infrastructure as Code",
			Type:  FieldTypeSelect,
			Options: options(
				"terraform", "Terraform",
				"pulumi", "Pulumi",
				"cloudformation", "CloudFormation",
				"ansible", "Ansible",
				"none", "None",
			),
		},
		{
			ID:    "ciPlatform",
			Label: "CI/CD Platform",
			Type:  FieldTypeSelect,
			Options: options(
				"github-actions", "GitHub Actions",
				"gitlab-ci", "GitLab CI",
				"jenkins", "Jenkins",
				"circleci", "CircleCI",
				"argocd", "Argo CD",
				"other", "Other",
			),
		},
		{
			ID:    "containerOrchestration",
			Label: "Container Orchestration",
			Type:  FieldTypeSelect,
			Options: options(
				"kubernetes", "Kubernetes",
				"nomad", "Nomad",
				"ecs", "ECS",
				"docker-compose", "Docker Compose",
				"none", "None",
			),
		},
	},
	CategoryEmbedded: {
		{
			ID:          "microcontroller",
			Label:       "Microcontroller / Board",
			Type:        FieldTypeText,
			MaxLength:   100,
			Placeholder: "e.g. ESP32, STM32F4, Raspberry Pi Pico",
		},
		{
			ID:    "firmwareLanguage",
			Label: "Firmware Language",
			Type:  FieldTypeSelect,
			Options: options(
				"c", "C",
				"cpp", "C++",
				"rust", "Rust",
				"micropython", "MicroPython",
				"tinygo", "TinyGo",
				"other", "Other",
			),
		},
		{
			ID:    "rtos",
			Label: "RTOS",
			Type:  FieldTypeSelect,
			Options: options(
				"freertos", "FreeRTOS",
				"zephyr", "Zephyr",
				"rtic", "RTIC",
				"bare-metal", "Bare metal",
				"other", "Other",
			),
		},
		{
			ID:    "connectivity",
			Label: "Connectivity",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"wifi", "Wi-Fi",
				"ble", "Bluetooth LE",
				"lora", "LoRa",
				"zigbee", "Zigbee",
				"cellular", "Cellular",
				"ethernet", "Ethernet",
			),
		},
	},
	CategoryBlockchain: {
		{
			ID:    "blockchainNetwork",
			Label: "Network",
			Type:  FieldTypeSelect,
			Options: options(
				"ethereum", "Ethereum",
				"solana", "Solana",
				"polygon", "Polygon",
				"arbitrum", "Arbitrum",
				"base", "Base",
				"bitcoin", "Bitcoin",
				"other", "Other",
			),
		},
		{
			ID:    "contractLanguage",
			Label: "Smart Contract Language",
			Type:  FieldTypeSelect,
			Options: options(
				"solidity", "Solidity",
				"vyper", "Vyper",
				"rust", "Rust",
				"move", "Move",
				"none", "None",
			),
		},
		{
			ID:          "contractAddress",
			Label:       "Contract Address",
			Type:        FieldTypeText,
			MaxLength:   100,
			Placeholder: "0x…",
		},
		{
			ID:    "walletSupport",
			Label: "Wallet Support",
			Type:  FieldTypeMultiSelect,
			Options: options(
				"metamask", "MetaMask",
				"walletconnect", "WalletConnect",
				"phantom", "Phantom",
				"coinbase", "Coinbase Wallet",
				"ledger", "Ledger",
			),
		},
	},
	CategoryOther: {
		{
			ID:          "projectType",
			Label:       "Project Type",
			Type:        FieldTypeText,
			MaxLength:   100,
			Placeholder: "Describe what kind of project this is",
		},
		{
			ID:          "targetAudience",
			Label:       "Target Audience",
			Type:        FieldTypeTextarea,
			MaxLength:   1000,
			Placeholder: "Who is this project for?",
		},
	},
}
