// seed_answers loads demo users and questionnaire answers into a running
// Vitality API.
//
// Input is a CSV with lines of the form email,question,answer. Users are
// registered on first sight (shared password via -password) and their
// answers submitted in one batch per user.
//
// Usage:
//
//	go run ./scripts/seed_answers -file demo_answers.csv -api http://localhost:8700 -score
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type userSeed struct {
	answers map[string]string
	token   string
}

func main() {
	filePath := flag.String("file", "demo_answers.csv", "path to answers CSV")
	apiURL := flag.String("api", "http://localhost:8700", "Vitality API base URL")
	password := flag.String("password", "changeme-demo", "password for seeded users")
	score := flag.Bool("score", false, "compute a result for each user after seeding")
	dryRun := flag.Bool("dry-run", false, "print users without posting")
	flag.Parse()

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open answers file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("parse answers file: %v", err)
	}

	users := map[string]*userSeed{}
	var order []string
	for i, rec := range records {
		if len(rec) != 3 {
			log.Fatalf("line %d: expected email,question,answer", i+1)
		}
		email := rec[0]
		if users[email] == nil {
			users[email] = &userSeed{answers: map[string]string{}}
			order = append(order, email)
		}
		users[email].answers[rec[1]] = rec[2]
	}

	if *dryRun {
		for _, email := range order {
			fmt.Printf("%s: %d answers\n", email, len(users[email].answers))
		}
		return
	}

	for _, email := range order {
		u := users[email]
		token, err := authenticate(*apiURL, email, *password)
		if err != nil {
			log.Fatalf("%s: %v", email, err)
		}
		u.token = token

		if err := post(*apiURL+"/api/v1/answers", token,
			map[string]interface{}{"answers": u.answers}, nil); err != nil {
			log.Fatalf("%s: submit answers: %v", email, err)
		}
		fmt.Printf("%s: submitted %d answers\n", email, len(u.answers))

		if *score {
			var result struct {
				Points         int `json:"points"`
				MaxForAnswered int `json:"maxforanswered"`
			}
			if err := post(*apiURL+"/api/v1/results", token, nil, &result); err != nil {
				log.Fatalf("%s: compute result: %v", email, err)
			}
			fmt.Printf("%s: scored %d of %d answered\n", email, result.Points, result.MaxForAnswered)
		}
	}
}

// authenticate logs the user in, registering them first if needed.
func authenticate(apiURL, email, password string) (string, error) {
	creds := map[string]interface{}{"email": email, "password": password}

	token, err := login(apiURL, creds)
	if err == nil {
		return token, nil
	}

	if err := post(apiURL+"/api/v1/users", "", creds, nil); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return login(apiURL, creds)
}

func login(apiURL string, creds map[string]interface{}) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := post(apiURL+"/api/v1/auth/login", "", creds, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return resp.Token, nil
}

func post(url, token string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(http.MethodPost, url, &buf)
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
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
