package attendance

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrExportFailed wraps workbook build failures; callers surface it as a
// generic export failure without internal detail.
var ErrExportFailed = errors.New("failed to build attendance export")

const exportSheet = "Attendance"

var exportHeaders = []string{
	"Member Name", "Student ID", "Activity", "Activity Date",
	"Status", "Comments", "Marked By", "Marked At",
}

// BuildWorkbook renders the filtered records into an xlsx workbook, one row
// per record. Pure projection; the input order is preserved.
func BuildWorkbook(records []DetailedRecord) (*excelize.File, error) {
	file := excelize.NewFile()
	defaultSheet := file.GetSheetName(file.GetActiveSheetIndex())
	if err := file.SetSheetName(defaultSheet, exportSheet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		if err := file.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.MemberName(),
			rec.StudentID,
			rec.ActivityTitle,
			rec.ActivityDate.Format("2006-01-02"),
			string(rec.Status),
			rec.Comments,
			rec.MarkedByName,
			rec.MarkedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
			}
			if err := file.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
			}
		}
	}

	return file, nil
}

// WriteWorkbook serializes the workbook into a buffer ready for download
func WriteWorkbook(file *excelize.File) (*bytes.Buffer, error) {
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf, nil
}
