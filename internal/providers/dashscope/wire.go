package dashscope

// Wire-level request and response shapes for the DashScope API. The same
// conceptual call comes back with different nesting per endpoint family, so
// each family gets its own typed pair and extraction lives in normalize.go.

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Text generation (and notes-to-slides) use plain string message content.

type chatRequest struct {
	Model      string     `json:"model"`
	Input      chatInput  `json:"input"`
	Parameters chatParams `json:"parameters"`
}

type chatInput struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatParams struct {
	ResultFormat string `json:"result_format,omitempty"`
}

type chatResponse struct {
	Output struct {
		Text    string `json:"text"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Image generation and editing use multimodal content blocks.

type multimodalRequest struct {
	Model      string          `json:"model"`
	Input      multimodalInput `json:"input"`
	Parameters imageParams     `json:"parameters"`
}

type multimodalInput struct {
	Messages []multimodalMessage `json:"messages"`
}

type multimodalMessage struct {
	Role    string              `json:"role"`
	Content []multimodalContent `json:"content"`
}

type multimodalContent struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type imageParams struct {
	NegativePrompt string `json:"negative_prompt"`
	PromptExtend   *bool  `json:"prompt_extend,omitempty"`
	Watermark      bool   `json:"watermark"`
	Size           string `json:"size,omitempty"`
	ImageType      string `json:"imageType,omitempty"`
	Style          string `json:"style,omitempty"`
	Quality        string `json:"quality,omitempty"`
}

type multimodalResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Content []struct {
					Image string `json:"image"`
					Text  string `json:"text"`
				} `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Video synthesis is asynchronous: the submit call answers with a task handle
// and subsequent polls of /tasks/{id} reuse the same envelope.

type videoSubmitRequest struct {
	Model      string      `json:"model"`
	Input      videoInput  `json:"input"`
	Parameters videoParams `json:"parameters"`
}

type videoInput struct {
	Prompt string     `json:"prompt"`
	Meta   *videoMeta `json:"meta,omitempty"`
}

type videoMeta struct {
	VideoType  string `json:"videoType,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	FPS        int    `json:"fps,omitempty"`
}

type videoParams struct {
	Quality int `json:"quality,omitempty"`
}

type taskEnvelope struct {
	Output struct {
		TaskID     string `json:"task_id"`
		TaskStatus string `json:"task_status"`
		VideoURL   string `json:"video_url"`
		Message    string `json:"message"`
	} `json:"output"`
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Speech synthesis responses have drifted across provider versions, hence the
// shotgun of optional URL and base64 fields.

type speechRequest struct {
	Model      string       `json:"model"`
	Input      speechInput  `json:"input"`
	Parameters speechParams `json:"parameters"`
}

type speechInput struct {
	Text string      `json:"text"`
	Meta *speechMeta `json:"meta,omitempty"`
}

type speechMeta struct {
	AudioType string  `json:"audioType,omitempty"`
	Voice     string  `json:"voice,omitempty"`
	Language  string  `json:"language,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Pitch     float64 `json:"pitch,omitempty"`
}

type speechParams struct {
	Format string `json:"format"`
}

type speechResponse struct {
	Output struct {
		AudioURL string `json:"audio_url"`
		URL      string `json:"url"`
		B64JSON  string `json:"b64_json"`
	} `json:"output"`
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	B64JSON     string `json:"b64_json"`
	AudioBase64 string `json:"audio_base64"`
	RequestID   string `json:"request_id"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}
