// Package upgrade checks GitHub for newer interpreter releases.
package upgrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/mewlang/mew/project"
)

const (
	releasesURL = "https://api.github.com/repos/mewisme/mew-language/releases/latest"
	tagsURL     = "https://api.github.com/repos/mewisme/mew-language/tags"
)

var client = &http.Client{Timeout: 10 * time.Second}

type release struct {
	TagName string `json:"tag_name"`
}

type tag struct {
	Name string `json:"name"`
}

// LatestVersion fetches the newest published version. Repositories that
// tag without cutting releases answer 404 on the release endpoint, so we
// fall back to the tag list.
func LatestVersion(ctx context.Context) (string, error) {
	body, status, err := get(ctx, releasesURL)
	if err != nil {
		return "", err
	}

	if status == http.StatusNotFound {
		return latestTag(ctx)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("failed to fetch release info: HTTP %d", status)
	}

	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return "", fmt.Errorf("failed to decode release info: %w", err)
	}
	return strings.TrimPrefix(rel.TagName, "v"), nil
}

func latestTag(ctx context.Context) (string, error) {
	body, status, err := get(ctx, tagsURL)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("failed to fetch tags: HTTP %d", status)
	}

	var tags []tag
	if err := json.Unmarshal(body, &tags); err != nil {
		return "", fmt.Errorf("failed to decode tags: %w", err)
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("no releases or tags found")
	}
	return strings.TrimPrefix(tags[0].Name, "v"), nil
}

// CheckForUpdate returns the newer version when one exists, or the empty
// string when current is already the latest.
func CheckForUpdate(ctx context.Context, current string) (string, error) {
	latest, err := LatestVersion(ctx)
	if err != nil {
		return "", err
	}

	currentVer, err := project.ParseVersion(current)
	if err != nil {
		return "", err
	}
	latestVer, err := project.ParseVersion(latest)
	if err != nil {
		return "", err
	}

	if latestVer.GreaterThan(currentVer) {
		return latest, nil
	}
	return "", nil
}

// InstallHint is the command the user runs to install the newer binary.
func InstallHint() string {
	if runtime.GOOS == "windows" {
		return `powershell -c "irm https://mewis.me/install.ps1 | iex"`
	}
	return "curl -s https://mewis.me/install.sh | bash"
}

func get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mew-Language/"+project.CurrentVersion)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
