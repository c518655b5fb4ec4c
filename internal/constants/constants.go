package constants

type Role string

const (
	RoleCustomer Role = "customer"
	RoleTasker   Role = "tasker"
)

type TaskStatus string

const (
	StatusPosted     TaskStatus = "posted"
	StatusAssigned   TaskStatus = "assigned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type TaskSize string

const (
	SizeSmall  TaskSize = "small"
	SizeMedium TaskSize = "medium"
	SizeLarge  TaskSize = "large"
)

type Urgency string

const (
	UrgencyFlexible   Urgency = "flexible"
	UrgencyWithinWeek Urgency = "within_week"
	UrgencyUrgent     Urgency = "urgent"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageSystem MessageType = "system"
)

func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleTasker
}

func ValidTaskSize(s TaskSize) bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

func ValidUrgency(u Urgency) bool {
	return u == UrgencyFlexible || u == UrgencyWithinWeek || u == UrgencyUrgent
}

func ValidMessageType(m MessageType) bool {
	return m == MessageText || m == MessageImage || m == MessageSystem
}
