// Package scraper provides functionality to fetch match recap pages and
// download report exports
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetchURL downloads the HTML content from a URL and returns it as a string
func FetchURL(url string) (string, error) {
	log.Printf("Fetching URL: %s", url)

	// Create an HTTP client with a timeout
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Send the HTTP request
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	// Check the response status code
	log.Printf("HTTP Status: %d (%s)", resp.StatusCode, resp.Status)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	// Print some information about the response
	contentType := resp.Header.Get("Content-Type")
	contentLength := resp.Header.Get("Content-Length")
	log.Printf("Content-Type: %s, Content-Length: %s bytes", contentType, contentLength)

	return string(body), nil
}

// DownloadFile downloads a file (RTF or PDF export) from a URL and saves it locally
func DownloadFile(url string, localPath string) error {
	log.Printf("Downloading %s to %s", url, localPath)

	// Create HTTP client with timeout
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Send the HTTP request
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("error fetching file: %w", err)
	}
	defer resp.Body.Close()

	// Check the response status code
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	// Create the file
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer out.Close()

	// Write response body to file
	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	log.Printf("Successfully downloaded %s", localPath)
	return nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// ExtractExportLinks extracts links to report export files (RTF or PDF)
// from a match recap page
func ExtractExportLinks(htmlContent string) []string {
	var links []string

	// Use goquery to parse the HTML content
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.Printf("Error parsing HTML content: %v", err)
		return links
	}

	// Find all <a> tags with href attributes
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}

		// Only collect links that look like report exports
		lower := strings.ToLower(href)
		if strings.HasSuffix(lower, ".rtf") || strings.HasSuffix(lower, ".pdf") ||
			strings.Contains(lower, "export") {
			log.Printf("Found export link: %s", href)
			links = append(links, href)
		}
	})

	log.Printf("Extracted %d export links", len(links))
	return links
}

// ResolveRelativeURL resolves an export link against the recap page URL it
// was found on. A base without a scheme is assumed to be https; anything
// unparseable returns the link unchanged
func ResolveRelativeURL(baseURL, relativeURL string) string {
	if strings.HasPrefix(relativeURL, "http://") || strings.HasPrefix(relativeURL, "https://") {
		return relativeURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return relativeURL
	}
	ref, err := url.Parse(relativeURL)
	if err != nil {
		return relativeURL
	}
	return base.ResolveReference(ref).String()
}
