package scanner

import (
	"database/sql"

	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/utils"
)

// ScanReport scans a SQL row into a Report. Works with both pgx.Row and
// pgx.Rows.
func ScanReport(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Report, error) {
	var r model.Report
	var imageURL sql.NullString

	err := scanner.Scan(
		&r.ID, &r.UserID, &r.Title, &r.Description, &r.Category,
		&imageURL, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.ImageURL = utils.NullStringToPointer(imageURL)

	return &r, nil
}
