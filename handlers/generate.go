package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

type generateRequest struct {
	Content      string `json:"content" binding:"required"`
	NumQuestions int    `json:"numQuestions"`
	NumCards     int    `json:"numCards"`
	Points       int    `json:"points"`
}

// GenerateQuizComponent builds a quiz component from lesson content using
// OpenAI. The response is a full component the editor can drop onto a slide.
func GenerateQuizComponent(c *gin.Context) {
	log.Println("*** /generate-quiz ***")

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 3
	}
	if req.Points <= 0 {
		req.Points = 10
	}

	prompt := fmt.Sprintf(`
	You are a friendly teacher writing a quiz for children aged 8-12. Generate %d multiple-choice questions based ONLY on the following lesson content. Keep the language simple and encouraging. Each question has exactly 4 answer choices with exactly one correct answer, plus a one-sentence explanation a child can understand. Return JUST a JSON object, nothing else.
	example:
	{"questions": [
		{
			"question": "What do plants need to make their own food?",
			"options": ["Sunlight", "Pizza", "Television", "Homework"],
			"answer": "Sunlight",
			"explanation": "Plants use sunlight to make food through photosynthesis."
		}
	]}
	Content:
	%s
	`, req.NumQuestions, req.Content)

	content, err := chatCompletion(prompt)
	if err != nil {
		log.Println("Error generating quiz questions", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	component, err := parseQuizComponent(content, req.Points)
	if err != nil {
		log.Println("Error parsing quiz questions", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": component})
}

// GenerateFlashcardsComponent builds a flashcards component from lesson
// content using OpenAI.
func GenerateFlashcardsComponent(c *gin.Context) {
	log.Println("*** /generate-flashcards ***")

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.NumCards <= 0 {
		req.NumCards = 5
	}

	prompt := fmt.Sprintf(`
	You are a friendly teacher writing flashcards for children aged 8-12. Generate %d flashcards based ONLY on the following lesson content. The front is a short question or term, the back is a simple answer a child can understand. Return JUST a JSON object, nothing else.
	example:
	{"cards": [
		{"front": "What is a loop?", "back": "A way to repeat the same steps again and again."}
	]}
	Content:
	%s
	`, req.NumCards, req.Content)

	content, err := chatCompletion(prompt)
	if err != nil {
		log.Println("Error generating flashcards", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	component, err := parseFlashcardsComponent(content)
	if err != nil {
		log.Println("Error parsing flashcards", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": component})
}

func chatCompletion(prompt string) (string, error) {
	client := openai.NewClient(utils.OPENAI_API_KEY)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	result, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: 4000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}

	return result.Choices[0].Message.Content, nil
}

func parseQuizComponent(content string, points int) (models.Component, error) {
	type generatedQuestion struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
	}
	var parsed struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return models.Component{}, err
	}
	if len(parsed.Questions) == 0 {
		return models.Component{}, fmt.Errorf("no questions generated")
	}

	questions := make([]map[string]any, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		options := make([]map[string]any, 0, len(q.Options))
		for _, opt := range q.Options {
			options = append(options, map[string]any{
				"id":        uuid.New().String(),
				"text":      opt,
				"isCorrect": strings.TrimSpace(opt) == strings.TrimSpace(q.Answer),
			})
		}
		questions = append(questions, map[string]any{
			"id":          uuid.New().String(),
			"question":    q.Question,
			"options":     options,
			"explanation": q.Explanation,
		})
	}

	return models.Component{
		ID:   uuid.New().String(),
		Type: "quiz",
		Props: map[string]any{
			"title":     "Quiz Time!",
			"questions": questions,
			"points":    points,
		},
	}, nil
}

func parseFlashcardsComponent(content string) (models.Component, error) {
	var parsed struct {
		Cards []struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		} `json:"cards"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return models.Component{}, err
	}
	if len(parsed.Cards) == 0 {
		return models.Component{}, fmt.Errorf("no cards generated")
	}

	cards := make([]map[string]any, 0, len(parsed.Cards))
	for _, card := range parsed.Cards {
		cards = append(cards, map[string]any{
			"id":    uuid.New().String(),
			"front": card.Front,
			"back":  card.Back,
		})
	}

	return models.Component{
		ID:   uuid.New().String(),
		Type: "flashcards",
		Props: map[string]any{
			"title": "Flashcards",
			"cards": cards,
		},
	}, nil
}
