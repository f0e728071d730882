package service

// Messages are the success payloads returned by resource mutations.
type Messages struct {
	Created string
	Updated string
	Deleted string
}

var (
	CategoryMessages = Messages{
		Created: "New category created",
		Updated: "Category updated successfully",
		Deleted: "Category was deleted successfully",
	}
	StatusMessages = Messages{
		Created: "New status created",
		Updated: "Status updated successfully",
		Deleted: "Status was deleted successfully",
	}
	TaskMessages = Messages{
		Created: "New task created",
		Updated: "Task updated successfully",
		Deleted: "Task was deleted successfully",
	}
)

const UserDeletedMessage = "User was deleted successfully"

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
)
