// Package openai adapts the OpenAI API to the classify capability
// interfaces: chat completions for fallback classification and Whisper
// for voice transcription.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Client struct {
	api        oai.Client
	chatModel  oai.ChatModel
	audioModel oai.AudioModel
}

func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	return &Client{
		api:        oai.NewClient(option.WithAPIKey(apiKey)),
		chatModel:  oai.ChatModelGPT3_5Turbo,
		audioModel: oai.AudioModelWhisper1,
	}, nil
}

// Complete implements classify.Completer.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, oai.ChatCompletionNewParams{
		Model: c.chatModel,
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe implements classify.Transcriber.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := c.api.Audio.Transcriptions.New(ctx, oai.AudioTranscriptionNewParams{
		Model: c.audioModel,
		File:  oai.File(audio, filename, "audio/ogg"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}
