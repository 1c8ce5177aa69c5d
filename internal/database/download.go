package database

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/jonasrenault/luniix/internal/config"
)

var client = &http.Client{Timeout: 30 * time.Second}

// DownloadOfficialDB fetches the vendor pack database into the config dir.
// The endpoint requires a guest auth token and identifies callers the same
// way the desktop application does. Download failures are logged, not
// returned: the tool keeps working from whatever cache exists.
func DownloadOfficialDB(settings config.Settings, force bool) {
	path := settings.OfficialDBPath()
	if fileExists(path) && !force {
		log.WithField("path", path).Debug("official database already cached")
		return
	}

	if err := downloadOfficial(settings, path); err != nil {
		log.WithError(err).Error("failed to download official database")
	}
}

// DownloadThirdPartyDB fetches the community database into the config dir.
func DownloadThirdPartyDB(settings config.Settings, force bool) {
	path := settings.ThirdPartyDBPath()
	if fileExists(path) && !force {
		log.WithField("path", path).Debug("third-party database already cached")
		return
	}

	if err := downloadThirdParty(settings, path); err != nil {
		log.WithError(err).Error("failed to download third-party database")
	}
}

func downloadOfficial(settings config.Settings, path string) error {
	if err := os.MkdirAll(settings.ConfigDir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create %s", settings.ConfigDir)
	}

	log.WithField("path", path).Info("downloading official database")

	token, err := fetchGuestToken(settings.OfficialTokenURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, settings.OfficialDBURL, nil)
	if err != nil {
		return errors.Wrap(err, "build database request")
	}
	req.Header.Set("Application-Sender", "luniistore_desktop")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-AUTH-TOKEN", token)

	res, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetch official database")
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return errors.Errorf("database server returned status: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "read database response")
	}

	var payload struct {
		Response map[string]map[string]any `json:"response"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return errors.Wrap(err, "parse database response")
	}

	// The server keys packs by an internal id; re-key by story UUID, which
	// is what the device indexes use.
	db := make(map[string]map[string]any, len(payload.Response))
	for _, pack := range payload.Response {
		id, ok := pack["uuid"].(string)
		if !ok {
			continue
		}
		db[id] = pack
	}

	return writeJSON(path, db)
}

func downloadThirdParty(settings config.Settings, path string) error {
	if err := os.MkdirAll(settings.ConfigDir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create %s", settings.ConfigDir)
	}

	log.WithField("path", path).Info("downloading third-party database")

	res, err := client.Get(settings.ThirdPartyDBURL)
	if err != nil {
		return errors.Wrap(err, "fetch third-party database")
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return errors.Errorf("database server returned status: %s", res.Status)
	}

	var db map[string]map[string]any
	if err := json.NewDecoder(res.Body).Decode(&db); err != nil {
		return errors.Wrap(err, "parse third-party database")
	}

	return writeJSON(path, db)
}

// fetchGuestToken creates a guest session and returns its server token.
func fetchGuestToken(url string) (string, error) {
	res, err := client.Get(url)
	if err != nil {
		return "", errors.Wrap(err, "fetch guest token")
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("token server returned status: %s", res.Status)
	}

	var payload struct {
		Response struct {
			Token struct {
				Server string `json:"server"`
			} `json:"token"`
		} `json:"response"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(err, "parse token response")
	}
	if payload.Response.Token.Server == "" {
		return "", errors.New("token response holds no server token")
	}
	return payload.Response.Token.Server, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode database")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
