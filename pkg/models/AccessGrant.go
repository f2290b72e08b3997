package models

/*
AccessGrant is handed out once an album ID and PIN pair checks out.
*/
type AccessGrant struct {
	AlbumID string `json:"album_id"`
	Valid   bool   `json:"valid"`
}

/*
AlbumAccess is stored in the client's session cookie and remembers
which albums this browser has unlocked.
*/
type AlbumAccess struct {
	AlbumIDs []string
}

func (a *AlbumAccess) Grant(albumID string) {
	if a.Has(albumID) {
		return
	}

	a.AlbumIDs = append(a.AlbumIDs, albumID)
}

func (a *AlbumAccess) Has(albumID string) bool {
	if a == nil {
		return false
	}

	for _, id := range a.AlbumIDs {
		if id == albumID {
			return true
		}
	}

	return false
}
