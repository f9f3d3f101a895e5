package service

// DriveServiceInterface defines the contract for Google Drive image hosting
type DriveServiceInterface interface {
	DownloadImage(fileID string) ([]byte, error)
}
