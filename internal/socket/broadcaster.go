package socket

import "fmt"

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

func ProjectRoom(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

func UserRoom(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

// ============================================
// Project Field Broadcasting
// ============================================

func (b *Broadcaster) FieldOrderChanged(projectID string, fieldOrder []string, completeness int, actorID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageFieldOrderChanged, map[string]interface{}{
		"projectId":    projectID,
		"fieldOrder":   fieldOrder,
		"completeness": completeness,
	}, actorID)
}

func (b *Broadcaster) CategoryChanged(projectID, category string, fieldOrder []string, completeness int, actorID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageCategoryChanged, map[string]interface{}{
		"projectId":    projectID,
		"category":     category,
		"fieldOrder":   fieldOrder,
		"completeness": completeness,
	}, actorID)
}

func (b *Broadcaster) CategoryDataChanged(projectID string, categoryData map[string]interface{}, completeness int, actorID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageCategoryDataChanged, map[string]interface{}{
		"projectId":    projectID,
		"categoryData": categoryData,
		"completeness": completeness,
	}, actorID)
}

// ============================================
// Project Lifecycle Broadcasting
// ============================================

func (b *Broadcaster) ProjectUpdated(projectID string, project map[string]interface{}, actorID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageProjectUpdated, project, actorID)
}

func (b *Broadcaster) ProjectDeleted(projectID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageProjectDeleted, map[string]interface{}{
		"projectId": projectID,
	}, "")
}

func (b *Broadcaster) ProjectRestored(projectID string) {
	b.hub.SendToRoom(ProjectRoom(projectID), MessageProjectRestored, map[string]interface{}{
		"projectId": projectID,
	}, "")
}

// ============================================
// Tag Moderation Broadcasting
// ============================================

// TagSubmissionReviewed tells the submitter how an admin decided.
func (b *Broadcaster) TagSubmissionReviewed(submitterID, submissionID, tagName, status string) {
	b.hub.SendToUser(submitterID, MessageTagSubmissionReviewed, map[string]interface{}{
		"submissionId": submissionID,
		"tagName":      tagName,
		"status":       status,
	})
}
