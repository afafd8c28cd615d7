// Headless exam agent.
//
// Logs in, starts an attempt at the given test and then behaves like
// the exam page would: ticks the countdown every second, autosaves a
// demo answer per question, and lets the timer submit the finish call
// when it reaches zero.
//
// Usage: go run scripts/examagent.go -slug reading-sample-1

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Shibo14/ielts-mock/internal/examrunner"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(method, url, token string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %d %s", method, url, resp.StatusCode, env.Message)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	email := flag.String("email", "student@example.com", "login email")
	password := flag.String("password", "student123", "login password")
	slug := flag.String("slug", "reading-sample-1", "test slug to attempt")
	flag.Parse()

	var login struct {
		Token string `json:"token"`
	}
	if err := call("POST", *base+"/api/login", "", map[string]string{
		"email": *email, "password": *password,
	}, &login); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	var submission struct {
		ID string `json:"id"`
	}
	if err := call("POST", *base+"/api/tests/"+*slug+"/start", login.Token, nil, &submission); err != nil {
		log.Fatalf("start failed: %v", err)
	}
	log.Printf("attempt %s started", submission.ID)

	var paperResp struct {
		RemainingSeconds int `json:"remainingSeconds"`
		Paper            struct {
			Title     string `json:"title"`
			Questions []struct {
				ID      string          `json:"id"`
				QType   string          `json:"qtype"`
				Options json.RawMessage `json:"options"`
			} `json:"questions"`
		} `json:"paper"`
	}
	if err := call("GET", *base+"/api/submissions/"+submission.ID+"/paper", login.Token, nil, &paperResp); err != nil {
		log.Fatalf("paper failed: %v", err)
	}
	log.Printf("paper %q, %d questions, %ds left",
		paperResp.Paper.Title, len(paperResp.Paper.Questions), paperResp.RemainingSeconds)

	// The finish form the countdown submits at zero.
	finished := make(chan struct{})
	finish := examrunner.Form{
		Action: *base + "/api/submissions/" + submission.ID + "/finish",
		Submit: func() {
			defer close(finished)
			if err := call("POST", *base+"/api/submissions/"+submission.ID+"/finish", login.Token, nil, nil); err != nil {
				log.Printf("finish failed: %v", err)
				return
			}
			log.Println("attempt finished by timer")
		},
	}

	minutes := (paperResp.RemainingSeconds + 59) / 60
	runner := examrunner.New(examrunner.Page{
		MinutesAttr: fmt.Sprintf("%d", minutes),
		Render:      func(display string) { fmt.Printf("\r%s ", display) },
		Forms:       []examrunner.Form{finish},
	}, examrunner.NewTimerScheduler(), examrunner.NewHTTPSender(*base, login.Token))

	runner.Start()
	defer runner.Stop()

	// Answer each question the way a fast student would: radios commit
	// at once, text inputs get a few keystrokes and the debounce sends
	// the final value.
	for _, q := range paperResp.Paper.Questions {
		field := examrunner.Field{
			ID:           "q-" + q.ID,
			SubmissionID: submission.ID,
			QuestionID:   q.ID,
		}
		if q.QType == "mcq" {
			var options []string
			_ = json.Unmarshal(q.Options, &options)
			if len(options) == 0 {
				continue
			}
			field.Kind = examrunner.FieldRadio
			runner.OnChange(field, options[0])
		} else {
			field.Kind = examrunner.FieldText
			runner.OnChange(field, "dra")
			runner.OnChange(field, "draft")
			runner.OnChange(field, "draft answer")
		}
		time.Sleep(examrunner.DebounceDelay + 100*time.Millisecond)
	}

	<-finished
	runner.Stop()
	fmt.Println()
	log.Printf("timer stopped at %s", runner.Countdown().Display())
}
