package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^\w\-\.]`)

// SafeFilename strips anything that should not end up in an object key or
// on disk and prefixes a timestamp so repeated uploads never collide.
func SafeFilename(name string) string {
	clean := unsafeChars.ReplaceAllString(name, "_")
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), clean)
}

// Client mirrors uploaded images to an object store speaking a signed-request
// protocol: every PUT/DELETE carries an expiry and an HMAC-SHA256 signature
// over "METHOD\n/path\nexpiry".
type Client struct {
	baseURL   string
	accessKey string
	secretKey string
	http      *http.Client
}

func New(baseURL, accessKey, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether remote storage credentials were provided.
// When false, images live only on the local uploads volume.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.accessKey != "" && c.secretKey != ""
}

func (c *Client) sign(method, path string, expires int64) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	fmt.Fprintf(mac, "%s\n%s\n%d", method, path, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) signedRequest(ctx context.Context, method, key string, body io.Reader) (*http.Request, error) {
	path := "/" + strings.TrimLeft(key, "/")
	expires := time.Now().Add(5 * time.Minute).Unix()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("access_key", c.accessKey)
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", c.sign(method, path, expires))
	req.URL.RawQuery = q.Encode()
	return req, nil
}

// Put uploads an object under key and returns its public URL.
func (c *Client) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	req, err := c.signedRequest(ctx, http.MethodPut, key, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach object storage: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("object storage error (%d): %s", resp.StatusCode, string(data))
	}
	return c.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}

// Delete removes an object. Missing objects are not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	req, err := c.signedRequest(ctx, http.MethodDelete, key, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach object storage: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent &&
		resp.StatusCode != http.StatusNotFound {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("object storage error (%d): %s", resp.StatusCode, string(data))
	}
	return nil
}
