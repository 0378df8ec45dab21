package entities

// Display holds the metadata a presentation layer needs to render a badge.
type Display struct {
	Label   string
	Variant string
	Color   string
	Icon    string
}

// Display mappings are exhaustive: an unknown value yields ok=false instead of
// an empty style.

func (ts TaskStatus) Display() (Display, bool) {
	switch ts {
	case TaskStatusTodo:
		return Display{Label: "To Do", Variant: "statusTodo", Color: "#64748b", Icon: "Circle"}, true
	case TaskStatusInProgress:
		return Display{Label: "In Progress", Variant: "statusInProgress", Color: "#2196F3", Icon: "Clock"}, true
	case TaskStatusDone:
		return Display{Label: "Done", Variant: "statusDone", Color: "#4CAF50", Icon: "CheckCircle"}, true
	default:
		return Display{}, false
	}
}

func (p Priority) Display() (Display, bool) {
	switch p {
	case PriorityLow:
		return Display{Label: "Low", Variant: "priorityLow", Color: "#64748b", Icon: "ArrowDown"}, true
	case PriorityMedium:
		return Display{Label: "Medium", Variant: "priorityMedium", Color: "#FF9800", Icon: "Minus"}, true
	case PriorityHigh:
		return Display{Label: "High", Variant: "priorityHigh", Color: "#F44336", Icon: "ArrowUp"}, true
	default:
		return Display{}, false
	}
}

func (p Permission) Display() (Display, bool) {
	switch p {
	case PermissionView:
		return Display{Label: "View Only", Variant: "permissionView", Color: "#64748b", Icon: "Eye"}, true
	case PermissionEdit:
		return Display{Label: "Can Edit", Variant: "permissionEdit", Color: "#5B47E0", Icon: "Edit"}, true
	default:
		return Display{}, false
	}
}

func (nt NotificationType) Display() (Display, bool) {
	switch nt {
	case NotificationTypeMention:
		return Display{Label: "Mention", Variant: "mention", Color: "#2563eb", Icon: "AtSign"}, true
	case NotificationTypeDueDate:
		return Display{Label: "Due date", Variant: "dueDate", Color: "#ea580c", Icon: "Calendar"}, true
	case NotificationTypeAssignment:
		return Display{Label: "Assignment", Variant: "assignment", Color: "#16a34a", Icon: "UserPlus"}, true
	case NotificationTypeOther:
		return Display{Label: "Notification", Variant: "other", Color: "#475569", Icon: "Bell"}, true
	default:
		return Display{}, false
	}
}

// ExpiredDisplay is the badge shown next to an expired share link.
var ExpiredDisplay = Display{Label: "Expired", Variant: "expired", Color: "#F44336", Icon: "LinkOff"}
