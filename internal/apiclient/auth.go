package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"recruitadmin/internal/domain/models"
)

func (c *Client) Login(ctx context.Context, in models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.doJSON(ctx, c.auth, http.MethodPost, "/login", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.doJSON(ctx, c.api, http.MethodPut, "/users/update-profile", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, in models.ChangePasswordInput) error {
	return c.doJSON(ctx, c.api, http.MethodPut, "/users/change-password", in, nil, nil)
}

func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"isActive": active}
	return c.doJSON(ctx, c.api, http.MethodPut, "/users/"+url.PathEscape(id)+"/active", body, nil, nil)
}

// UploadFile posts one multipart file and returns the stored file URL.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (string, error) {
	resp, err := c.do(ctx, c.api, http.MethodPost, "/files/upload-file", func(req *resty.Request) {
		req.SetFileReader("file", name, r)
	})
	if err != nil {
		return "", err
	}
	body := strings.TrimSpace(string(resp.Body()))
	if strings.HasPrefix(body, `"`) {
		var s string
		if err := json.Unmarshal([]byte(body), &s); err != nil {
			return "", fmt.Errorf("decode upload response: %w", err)
		}
		body = s
	}
	if body == "" {
		return "", fmt.Errorf("upload of %s returned no url", name)
	}
	return body, nil
}
