// Package queue defines message payloads exchanged over the message broker.
package queue

// AllocationCompletedEvent is published when an allocation run finishes and
// is persisted. It carries enough information for downstream consumers to
// log, notify, or trigger exports without querying the primary database.
type AllocationCompletedEvent struct {
    AllocationID    uint64   `json:"allocation_id"`
    Status          string   `json:"status"` // COMPLETE | PARTIAL
    Policy          string   `json:"policy"`
    StudentCount    int      `json:"student_count"`
    AssignedCount   int      `json:"assigned_count"`
    UnassignedCount int      `json:"unassigned_count"`
    RoomsUsed       int      `json:"rooms_used"`
    RoomCodes       []string `json:"rooms"`
    TriggeredBy     uint64   `json:"triggered_by"`
    CompletedAt     string   `json:"completed_at"`
}
