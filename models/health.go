package models

type HealthItemName string

const (
	OutputStorageHealthItemName HealthItemName = "output_storage"
	UploadStorageHealthItemName HealthItemName = "upload_storage"
	OcrEngineHealthItemName     HealthItemName = "ocr_engine"
)

type HealthItemStatus struct {
	Name   HealthItemName
	Status bool
}

type HealthStatus struct {
	Statuses []HealthItemStatus
}

func (l HealthStatus) IsHealthy() bool {
	for _, status := range l.Statuses {
		if !status.Status {
			return false
		}
	}
	return true
}
