package viewmodels

import "github.com/avestudio/studio/pkg/gdrive"

type GoogleDriveImages struct {
	Success  bool          `json:"success"`
	Count    int           `json:"count"`
	FolderID string        `json:"folder_id"`
	Images   []gdrive.File `json:"images"`
}

type GoogleDriveFolder struct {
	Success bool           `json:"success"`
	Folder  *gdrive.Folder `json:"folder"`
}
