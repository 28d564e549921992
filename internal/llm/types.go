package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for a text completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of a text completion request.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// ImageRequest asks an image model for a single picture.
type ImageRequest struct {
	Model       string
	Prompt      string
	AspectRatio string // e.g. "16:9"
}

// Image is an inline image payload.
type Image struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// ImageResponse holds the inline images found in a response, in order.
// It may be empty when the model answered with text only.
type ImageResponse struct {
	Images []Image
	Model  string
}

// First returns the first image, or nil when there is none.
func (r *ImageResponse) First() *Image {
	if r == nil || len(r.Images) == 0 {
		return nil
	}
	img := r.Images[0]
	return &img
}
