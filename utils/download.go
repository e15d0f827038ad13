package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxImageSize caps the size of a downloaded image.
const maxImageSize = 8 << 20

var httpClient = &http.Client{Timeout: 15 * time.Second}

// DownloadImage fetches the image from the internet and returns its content.
func DownloadImage(uri string) ([]byte, error) {
	res, err := httpClient.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("image file from URI %s exceeds %d bytes", uri, maxImageSize)
	}

	if !IsImage(uri, data) {
		return nil, fmt.Errorf("the downloaded file is not a valid image type")
	}
	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
