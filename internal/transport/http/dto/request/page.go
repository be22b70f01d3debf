package request

type PublishRequest struct {
	IsPublished *bool `json:"is_published" validate:"required"`
}
