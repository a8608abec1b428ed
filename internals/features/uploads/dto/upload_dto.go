// internals/features/uploads/dto/upload_dto.go
package dto

import uploadService "msec_erp_backend/internals/features/uploads/service"

type UploadResponse struct {
	Updated  int      `json:"updated"`
	Warnings []string `json:"warnings,omitempty"`
}

func FromResult(res *uploadService.Result) UploadResponse {
	return UploadResponse{
		Updated:  res.Updated,
		Warnings: res.Warnings,
	}
}
