package mcqgen

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "time"
)

const (
    defaultBaseURL = "https://api.openai.com/v1"
    defaultModel   = "gpt-4o-mini"
    mcqCount       = 5
)

// ErrMalformedCompletion is returned when the model output is not the
// expected JSON object. Malformed output is a hard failure; there is no
// retry.
var ErrMalformedCompletion = errors.New("completion is not valid MCQ JSON")

// MCQ is one generated draft question.
type MCQ struct {
    QuestionText string `json:"question_text"`
    OptionA      string `json:"option_a"`
    OptionB      string `json:"option_b"`
    OptionC      string `json:"option_c"`
    OptionD      string `json:"option_d"`
    CorrectIndex int    `json:"correct_index"`
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
    baseURL    string
    apiKey     string
    model      string
    httpClient *http.Client
}

func NewClient(apiKey string) *Client {
    return &Client{
        baseURL:    defaultBaseURL,
        apiKey:     apiKey,
        model:      defaultModel,
        httpClient: &http.Client{Timeout: 60 * time.Second},
    }
}

// NewClientWithBaseURL points the client at a different completions host,
// used by tests and self-hosted gateways.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
    c := NewClient(apiKey)
    c.baseURL = baseURL
    return c
}

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatRequest struct {
    Model          string        `json:"model"`
    ResponseFormat formatSpec    `json:"response_format"`
    Messages       []chatMessage `json:"messages"`
}

type formatSpec struct {
    Type string `json:"type"`
}

type chatResponse struct {
    Choices []struct {
        Message struct {
            Content string `json:"content"`
        } `json:"message"`
    } `json:"choices"`
}

// Generate asks the model for draft MCQs covering the extracted text and
// parses the response defensively.
func (c *Client) Generate(ctx context.Context, extractedText string) ([]MCQ, error) {
    prompt := fmt.Sprintf(`Generate %d MCQs from this text:

%s

Return ONLY JSON:
{
  "mcqs": [
    {
      "question_text": "",
      "option_a": "",
      "option_b": "",
      "option_c": "",
      "option_d": "",
      "correct_index": 0
    }
  ]
}`, mcqCount, extractedText)

    body, err := json.Marshal(chatRequest{
        Model:          c.model,
        ResponseFormat: formatSpec{Type: "json_object"},
        Messages: []chatMessage{
            {Role: "system", Content: "You are an MCQ generator. ALWAYS return valid JSON ONLY."},
            {Role: "user", Content: prompt},
        },
    })
    if err != nil {
        return nil, err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.apiKey)

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("completions endpoint returned status %d", resp.StatusCode)
    }

    var payload chatResponse
    if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
        return nil, err
    }
    if len(payload.Choices) == 0 {
        return nil, ErrMalformedCompletion
    }

    var parsed struct {
        MCQs []MCQ `json:"mcqs"`
    }
    if err := json.Unmarshal([]byte(payload.Choices[0].Message.Content), &parsed); err != nil {
        return nil, ErrMalformedCompletion
    }
    if len(parsed.MCQs) == 0 {
        return nil, ErrMalformedCompletion
    }

    return parsed.MCQs, nil
}
