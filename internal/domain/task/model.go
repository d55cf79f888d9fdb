package task

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "inProgress"
	StatusCompleted  = "completed"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)

type Task struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UnitID      string    `gorm:"type:uuid;index;not null"`
	CreatorID   string    `gorm:"type:uuid;not null"`
	AssigneeID  *string   `gorm:"type:uuid;index"`
	Title       string    `gorm:"not null"`
	Description *string
	Status      string     `gorm:"type:varchar(16);not null"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Media []MediaItem `gorm:"foreignKey:TaskID"`
}

// MediaItem is a completion-evidence file. The row is created when the
// upload URL is issued (UploadPending, size 0) and finalized by the
// confirm call.
type MediaItem struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	TaskID       string    `gorm:"type:uuid;index;not null"`
	URL          string    `gorm:"not null"`
	Type         string    `gorm:"type:varchar(8);not null"`
	Filename     string    `gorm:"not null"`
	MimeType     string    `gorm:"not null"`
	Size         int64     `gorm:"not null;default:0"`
	UploadStatus string    `gorm:"type:varchar(16);not null;default:'pending'"`
	StorageKey   string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// UploadTicket is what the client needs to PUT the file and confirm it.
type UploadTicket struct {
	UploadURL string
	MediaID   string
	FileURL   string
}

type CreateTaskInput struct {
	UnitID      string
	Title       string
	Description *string
	DueDate     *time.Time
	AssigneeID  *string
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// allowedMediaTypes maps the accepted MIME types to the stored media type.
var allowedMediaTypes = map[string]string{
	"image/jpeg":      MediaTypeImage,
	"image/png":       MediaTypeImage,
	"image/gif":       MediaTypeImage,
	"video/mp4":       MediaTypeVideo,
	"video/quicktime": MediaTypeVideo,
}
