package http

import (
	"net/http"

	"github.com/MKhiriev/admin-panel/internal/utils"
	"github.com/MKhiriev/admin-panel/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteJSON(w, models.HealthResponse{
		Status:    "ok",
		Version:   info.BuildVersion(),
		BuildDate: info.BuildDate(),
		Commit:    info.BuildCommit(),
	}, http.StatusOK)
}
