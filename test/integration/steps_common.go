package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/cucumber/godog"

	"github.com/kosciej/cabrillo-log/pkg/generator"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	serverURL    string
	instance     *ServerInstance
	response     *http.Response
	responseBody []byte
	submissionID string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:        tc,
		serverURL: tc.ServerURL,
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a Cabrillo server is running$`, s.aCabrilloServerIsRunning)
	sc.Step(`^a Cabrillo server with an upload limit of (\d+) bytes is running$`, s.aServerWithUploadLimit)
	sc.Step(`^the archive is empty$`, s.theArchiveIsEmpty)

	// Request steps
	sc.Step(`^I upload the following log to "([^"]*)":$`, s.iUploadTheFollowingLogTo)
	sc.Step(`^I upload a generated log with (\d+) QSOs to "([^"]*)"$`, s.iUploadAGeneratedLog)
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I DELETE "([^"]*)"$`, s.iDELETE)
	sc.Step(`^I GET the uploaded log$`, s.iGETTheUploadedLog)
	sc.Step(`^I DELETE the uploaded log$`, s.iDELETETheUploadedLog)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the JSON at "([^"]*)" should be "([^"]*)"$`, s.theJSONAtShouldBe)
	sc.Step(`^the archive should contain (\d+) logs?$`, s.theArchiveShouldContain)

	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if s.instance != nil {
			s.instance.Stop()
			s.instance = nil
		}
		return ctx, nil
	})
}

// Background steps

func (s *StepsContext) aCabrilloServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aServerWithUploadLimit(limit int) error {
	cfg := DefaultServerConfig()
	cfg.MaxUploadBytes = int64(limit)

	instance, err := StartServer(s.tc, cfg)
	if err != nil {
		return err
	}
	s.instance = instance
	s.serverURL = instance.ServerURL
	return nil
}

func (s *StepsContext) theArchiveIsEmpty() error {
	return s.tc.DB.Exec(`DELETE FROM submissions`).Error
}

// Request steps

func (s *StepsContext) upload(path string, content []byte) error {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("logfile", "contest.log")
	if err != nil {
		return err
	}
	if _, err := fw.Write(content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.serverURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

func (s *StepsContext) do(req *http.Request) error {
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if id := resp.Header.Get("X-Submission-Id"); id != "" {
		s.submissionID = id
	}
	return nil
}

func (s *StepsContext) iUploadTheFollowingLogTo(path string, doc *godog.DocString) error {
	return s.upload(path, []byte(doc.Content+"\n"))
}

func (s *StepsContext) iUploadAGeneratedLog(qsos int, path string) error {
	log := generator.Generate(generator.Options{Seed: int64(qsos), QSOs: qsos})
	return s.upload(path, []byte(log.String()))
}

func (s *StepsContext) iGET(path string) error {
	req, err := http.NewRequest("GET", s.serverURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) iDELETE(path string) error {
	req, err := http.NewRequest("DELETE", s.serverURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) iGETTheUploadedLog() error {
	if s.submissionID == "" {
		return fmt.Errorf("no log has been uploaded in this scenario")
	}
	return s.iGET("/logs/" + s.submissionID)
}

func (s *StepsContext) iDELETETheUploadedLog() error {
	if s.submissionID == "" {
		return fmt.Errorf("no log has been uploaded in this scenario")
	}
	return s.iDELETE("/logs/" + s.submissionID)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected response to contain %q, got: %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theJSONAtShouldBe(expr, expected string) error {
	var doc interface{}
	if err := json.Unmarshal(s.responseBody, &doc); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fmt.Errorf("jsonpath %s: %w", expr, err)
	}
	if got := fmt.Sprint(val); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", expr, expected, got)
	}
	return nil
}

func (s *StepsContext) theArchiveShouldContain(count int) error {
	var n int64
	if err := s.tc.DB.Table("submissions").Count(&n).Error; err != nil {
		return err
	}
	if int(n) != count {
		return fmt.Errorf("expected %d archived logs, got %d", count, n)
	}
	return nil
}
