package gdrive

/*
File is an image in a Google Drive folder. Records are built fresh from
every catalog call and never persisted.
*/
type File struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	Size          int64  `json:"size,string,omitempty"`
	CreatedTime   string `json:"createdTime,omitempty"`
	ModifiedTime  string `json:"modifiedTime,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	DownloadLink  string `json:"downloadLink"`
	DirectLink    string `json:"directLink"`
}

type Folder struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
}
