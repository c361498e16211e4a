package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/whttp"
)

// uploadExtensions are the resume formats the parser accepts. The backend
// rejects anything else with a 400, so we refuse locally before sending.
var uploadExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// CheckUploadPaths rejects file lists the parser would refuse, using the
// backend's own error message. Demo sessions apply the same rule.
func CheckUploadPaths(paths []string) error {
	if len(paths) == 0 {
		return &Error{Kind: KindBadRequest, Op: "candidates.upload", Detail: "no files given"}
	}
	for _, path := range paths {
		ext := strings.ToLower(filepath.Ext(path))
		if !uploadExtensions[ext] {
			return &Error{
				Kind:   KindBadRequest,
				Op:     "candidates.upload",
				Detail: fmt.Sprintf("Invalid file type for %s. Only PDF and DOCX files are supported.", filepath.Base(path)),
			}
		}
	}
	return nil
}

// ListCandidates fetches every parsed candidate profile.
func (c *Client) ListCandidates(ctx context.Context) ([]hiring.Candidate, error) {
	var out []hiring.Candidate
	err := c.do(ctx, request{op: "candidates.list", method: http.MethodGet, path: "/candidates/"}, &out)
	return out, err
}

// GetCandidate fetches one candidate by id.
func (c *Client) GetCandidate(ctx context.Context, id string) (*hiring.Candidate, error) {
	var out hiring.Candidate
	err := c.do(ctx, request{op: "candidates.get", method: http.MethodGet, path: "/candidates/" + id}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadCandidates sends resume files for parsing and returns the backend's
// acknowledgement message. Parsing happens asynchronously on the backend;
// the new candidates only show up on a later list call.
func (c *Client) UploadCandidates(ctx context.Context, paths []string) (string, error) {
	if err := CheckUploadPaths(paths); err != nil {
		return "", err
	}

	body, contentType, err := whttp.FileUploadBody("files", paths)
	if err != nil {
		return "", &Error{Kind: KindBadRequest, Op: "candidates.upload", Err: err}
	}

	raw, err := c.doRaw(ctx, request{
		op:          "candidates.upload",
		method:      http.MethodPost,
		path:        "/candidates/upload",
		body:        body,
		contentType: contentType,
		upload:      true,
	})
	if err != nil {
		return "", err
	}
	return ackMessage(raw), nil
}

// ackMessage pulls the human-readable acknowledgement out of a workflow
// trigger response body.
func ackMessage(body string) string {
	return gjson.Get(body, "message").String()
}
