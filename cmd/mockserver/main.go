package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
)

var (
	port  = kingpin.Flag("port", "Port to run the server on").Short('p').Default("8001").String()
	delay = kingpin.Flag("slow-delay", "Delay used for messages containing \"slow\"").Default("60s").Duration()
)

type mockRequest struct {
	Model    string                         `json:"model"`
	Messages []openai.ChatCompletionMessage `json:"messages"`
}

func main() {
	kingpin.Parse()

	r := gin.Default()

	// Fake DeepSeek chat completions endpoint. The last user message selects
	// a scenario so every gateway error path can be reached by hand.
	r.POST("/chat/completions", func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid_api_key", "type": "authentication_error"}})
			return
		}

		var req mockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}

		question := ""
		if n := len(req.Messages); n > 0 {
			question = strings.ToLower(req.Messages[n-1].Content)
		}

		switch {
		case strings.Contains(question, "ratelimit"):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": gin.H{"message": "Rate limit reached for requests"}})
			return
		case strings.Contains(question, "badkey"):
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid_api_key"}})
			return
		case strings.Contains(question, "garbage"):
			c.Data(http.StatusOK, "application/json", []byte(`{"choices": [`))
			return
		case strings.Contains(question, "empty"):
			c.JSON(http.StatusOK, gin.H{"choices": []interface{}{}})
			return
		case strings.Contains(question, "slow"):
			select {
			case <-time.After(*delay):
			case <-c.Request.Context().Done():
				return
			}
		}

		content := fmt.Sprintf("Great question! You asked: %q.\nHere is an example: \"I have been learning English since 2020.\"\n<div class=\"translation\">好问题！你问的是：%q。\n例句：“我从2020年开始学习英语。”</div>",
			question, question)

		resp := openai.ChatCompletionResponse{
			ID:      fmt.Sprintf("mock-%d", time.Now().UnixNano()),
			Object:  "chat.completion",
			Created: time.Now().Unix(),
			Model:   req.Model,
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: content,
					},
					FinishReason: openai.FinishReasonStop,
				},
			},
			Usage: openai.Usage{
				PromptTokens:     len(question) / 4,
				CompletionTokens: len(content) / 4,
				TotalTokens:      (len(question) + len(content)) / 4,
			},
		}

		c.JSON(http.StatusOK, resp)
	})

	if err := r.Run(":" + *port); err != nil {
		log.Fatal(err)
	}
}
