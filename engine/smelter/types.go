package smelter

import "encoding/json"

// RegisterResponse is the server's answer to a register request. Which
// fields are set depends on what was registered: port-bound inputs and
// outputs report the port, MP4 inputs report probed track durations,
// WHIP endpoints report a bearer token.
type RegisterResponse struct {
	Port            *int    `json:"port,omitempty"`
	VideoDurationMs *int64  `json:"video_duration_ms,omitempty"`
	AudioDurationMs *int64  `json:"audio_duration_ms,omitempty"`
	BearerToken     string  `json:"bearer_token,omitempty"`
}

// UpdateOutputRequest replaces the scene rendered on one output.
type UpdateOutputRequest struct {
	Video *VideoScene `json:"video,omitempty"`

	// ScheduleTimeMs delays the update to a pipeline timestamp instead of
	// applying it immediately. Nil applies now.
	ScheduleTimeMs *int64 `json:"schedule_time_ms,omitempty"`
}

// VideoScene is the video half of an output update.
type VideoScene struct {
	Root json.RawMessage `json:"root"`
}

// Status describes the registered inputs and outputs of a running server.
type Status struct {
	Inputs  []EntityStatus `json:"inputs"`
	Outputs []EntityStatus `json:"outputs"`
}

// EntityStatus is one input or output in a Status report.
type EntityStatus struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Event names delivered on the websocket stream.
const (
	EventVideoInputDelivered = "VIDEO_INPUT_DELIVERED"
	EventAudioInputDelivered = "AUDIO_INPUT_DELIVERED"
	EventVideoInputPlaying   = "VIDEO_INPUT_PLAYING"
	EventAudioInputPlaying   = "AUDIO_INPUT_PLAYING"
	EventVideoInputEOS       = "VIDEO_INPUT_EOS"
	EventAudioInputEOS       = "AUDIO_INPUT_EOS"
	EventOutputDone          = "OUTPUT_DONE"
)

// Event is one message from the server event stream.
type Event struct {
	Type     string `json:"type"`
	InputID  string `json:"input_id,omitempty"`
	OutputID string `json:"output_id,omitempty"`
}

type errorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}
