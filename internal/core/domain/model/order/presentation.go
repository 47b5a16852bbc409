package order

// StatusInfo carries the display attributes for an order status: a label, a
// semantic color class, an icon tag, and a one-line description. Every
// surface that renders an order status derives them from here so the
// presentation stays consistent.
type StatusInfo struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Info maps a status to its display attributes. Pure function, total over
// the five-state domain; invalid statuses fall back to an "Unknown" entry.
func (s Status) Info() StatusInfo {
	switch s {
	case Pending:
		return StatusInfo{
			Label:       "Pending",
			Color:       "bg-yellow-100 text-yellow-800",
			Icon:        "hourglass",
			Description: "Order is waiting for freelancer to start work",
		}
	case InProgress:
		return StatusInfo{
			Label:       "In Progress",
			Color:       "bg-blue-100 text-blue-800",
			Icon:        "refresh",
			Description: "Work is currently being done",
		}
	case Completed:
		return StatusInfo{
			Label:       "Completed",
			Color:       "bg-green-100 text-green-800",
			Icon:        "check",
			Description: "Order has been completed successfully",
		}
	case Cancelled:
		return StatusInfo{
			Label:       "Cancelled",
			Color:       "bg-red-100 text-red-800",
			Icon:        "cross",
			Description: "Order has been cancelled",
		}
	case Disputed:
		return StatusInfo{
			Label:       "Disputed",
			Color:       "bg-orange-100 text-orange-800",
			Icon:        "warning",
			Description: "Order is under dispute resolution",
		}
	default:
		return StatusInfo{
			Label:       "Unknown",
			Color:       "bg-gray-100 text-gray-800",
			Icon:        "question",
			Description: "Order status is unknown",
		}
	}
}
