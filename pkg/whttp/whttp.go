package whttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type WHTTPHeader struct {
	Name  string
	Value string
}

type WHTTPReq struct {
	URL         string
	Method      string
	Query       url.Values
	Headers     []WHTTPHeader
	Body        io.Reader
	ContentType string
}

type WHTTPRes struct {
	StatusCode     int
	ResponseLength int
	HTTPTitle      string
	BodyString     string
}

// SendHTTPRequest performs a single request and drains the body into the
// response wrapper. It never retries and treats every status code as a
// successful transport outcome; classification is the caller's concern.
func SendHTTPRequest(ctx context.Context, wReq *WHTTPReq, client *http.Client) (wRes *WHTTPRes, err error) {
	target := wReq.URL
	if len(wReq.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + wReq.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, wReq.Method, target, wReq.Body)
	if err != nil {
		return nil, err
	}

	// Set common headers
	req.Header.Set("User-Agent", "hirewatch-client")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	if wReq.ContentType != "" {
		req.Header.Set("Content-Type", wReq.ContentType)
	}

	// Set custom headers
	for _, h := range wReq.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	wRes = &WHTTPRes{
		BodyString: string(bodyBytes),
		StatusCode: resp.StatusCode,
	}

	// Error pages from proxies and load balancers come back as HTML; the
	// <title> is usually the only readable hint in them.
	if looksLikeHTML(resp.Header.Get("Content-Type"), wRes.BodyString) {
		if title, ok := getHTMLTitle(wRes.BodyString); ok {
			wRes.HTTPTitle = strings.ToValidUTF8(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", "")), "")
		}
	}

	wRes.ResponseLength = utf8.RuneCountInString(wRes.BodyString)
	return wRes, nil
}

// JSONBody encodes v for use as a request body.
func JSONBody(v any) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}
	return buf, "application/json", nil
}

// FileUploadBody builds a multipart body with one part per file under the
// given field name.
func FileUploadBody(field string, paths []string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("opening %s: %w", path, err)
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}
		f.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(trimmed, "<!") || strings.HasPrefix(trimmed, "<html")
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result, ok := traverse(c)
		if ok {
			return result, ok
		}
	}

	return "", false
}

func getHTMLTitle(requestBody string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(requestBody))
	if err != nil {
		return "", false
	}

	return traverse(doc)
}
