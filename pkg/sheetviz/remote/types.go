package remote

import (
	"fmt"
	"time"

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// User is the identity returned by a successful login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type otpRequest struct {
	Email string `json:"email"`
}

// Registration holds the fields of the OTP verification step.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// messageResponse covers the {"message": ...} and {"error": ...} bodies the
// backend returns.
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m messageResponse) text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

// FileRecord is the wire form of a dataset.
type FileRecord struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	UploadDate string          `json:"uploadDate"`
	Headers    []string        `json:"headers"`
	Data       [][]models.Cell `json:"data"`
	Size       int64           `json:"size"`
}

// RecordFromDataset serializes a dataset for upload.
func RecordFromDataset(ds *models.Dataset) FileRecord {
	return FileRecord{
		ID:         ds.ID(),
		Name:       ds.Name(),
		UploadDate: ds.UploadedAt().UTC().Format(time.RFC3339Nano),
		Headers:    ds.Headers(),
		Data:       ds.Rows(),
		Size:       ds.Size(),
	}
}

// Dataset rebuilds the dataset, parsing UploadDate as ISO-8601.
func (r FileRecord) Dataset() (*models.Dataset, error) {
	uploaded, err := parseUploadDate(r.UploadDate)
	if err != nil {
		return nil, fmt.Errorf("file %q: %w", r.ID, err)
	}
	return models.RestoreDataset(r.ID, r.Name, uploaded, r.Size, r.Headers, r.Data)
}

func parseUploadDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid uploadDate %q", s)
}
