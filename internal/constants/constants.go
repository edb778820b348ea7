package constants

// Session keys
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

// Local store key scheme. Keys are shared with earlier clients, so the
// namespace and layout must not change.
const (
	ChecklistDraftKeyFormat = "equiptrack:checklist:%s:%s" // kind, entity id
	SampleSnapshotKeyFormat = "equiptrack:sample:%s"       // entity id
)

// UpcomingWindowHours is how far ahead a scheduled task counts as "upcoming"
// in the daily view.
const UpcomingWindowHours = 2
