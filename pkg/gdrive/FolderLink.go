package gdrive

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidFolderLink = fmt.Errorf("could not extract a Google Drive folder ID from the link")

	folderLinkPatterns = []*regexp.Regexp{
		// https://drive.google.com/drive/folders/{id} and /drive/u/0/folders/{id}
		regexp.MustCompile(`^https?://drive\.google\.com/drive/(?:u/\d+/)?folders/([A-Za-z0-9_-]+)`),
		// https://drive.google.com/open?id={id}
		regexp.MustCompile(`^https?://drive\.google\.com/open\?(?:[^#]*&)?id=([A-Za-z0-9_-]+)`),
	}
)

/*
ExtractFolderID pulls the folder ID out of a pasted Google Drive share
link. Only the two link shapes Drive hands out for folders are accepted.
*/
func ExtractFolderID(link string) (string, error) {
	link = strings.TrimSpace(link)

	for _, pattern := range folderLinkPatterns {
		if matches := pattern.FindStringSubmatch(link); len(matches) == 2 {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", ErrInvalidFolderLink, link)
}
