package dashscope

import "strings"

// firstChatContent extracts the generated text from a chat-style response.
// Current API versions put it in choices[0].message.content; older ones used
// a flat output.text. The string is returned exactly as the provider sent it.
func firstChatContent(resp chatResponse) string {
	for _, choice := range resp.Output.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content
		}
	}
	return resp.Output.Text
}

// imageURLs flattens every image reference out of a multimodal response.
func imageURLs(resp multimodalResponse) []string {
	var urls []string
	for _, choice := range resp.Output.Choices {
		for _, content := range choice.Message.Content {
			if url := strings.TrimSpace(content.Image); url != "" {
				urls = append(urls, url)
			}
		}
	}
	return urls
}

// speechAudioURL picks the first audio artifact present in a speech response,
// falling back from URL fields to base64 payloads rendered as a data URI.
func speechAudioURL(resp speechResponse) string {
	for _, url := range []string{resp.Output.AudioURL, resp.Output.URL} {
		if strings.TrimSpace(url) != "" {
			return url
		}
	}
	if len(resp.Data) > 0 && strings.TrimSpace(resp.Data[0].URL) != "" {
		return resp.Data[0].URL
	}
	for _, b64 := range []string{resp.Output.B64JSON, resp.B64JSON, resp.AudioBase64} {
		if strings.TrimSpace(b64) != "" {
			return "data:audio/mpeg;base64," + b64
		}
	}
	return ""
}
