package metricsexport

import "github.com/tcheronneau/homers-go/internal/model"

func (r *Registry) absorbOverseerr(result model.TaskResult) {
	status, mediaStatus, total, pending, approved, declined := r.overseerrRequestStatus, r.overseerrMediaStatus, r.overseerrRequestsTotal, r.overseerrRequestsPending, r.overseerrRequestsApproved, r.overseerrRequestsDeclined
	if result.OverseerrKind == model.KindJellyseerr {
		status, mediaStatus, total, pending, approved, declined = r.jellyseerrRequestStatus, r.jellyseerrMediaStatus, r.jellyseerrRequestsTotal, r.jellyseerrRequestsPending, r.jellyseerrRequestsApproved, r.jellyseerrRequestsDeclined
	}

	var pendingCount, approvedCount, declinedCount int
	for _, req := range result.OverseerrRequests {
		status.WithLabelValues(req.MediaType, req.RequestedBy, req.MediaTitle).Set(float64(req.RequestStatus))
		mediaStatus.WithLabelValues(req.MediaType, req.RequestedBy, req.MediaTitle).Set(float64(req.MediaStatus))
		switch req.RequestStatus {
		case model.RequestPendingApproval:
			pendingCount++
		case model.RequestApproved:
			approvedCount++
		case model.RequestDeclined:
			declinedCount++
		}
	}
	total.WithLabelValues(result.Instance).Set(float64(len(result.OverseerrRequests)))
	pending.WithLabelValues(result.Instance).Set(float64(pendingCount))
	approved.WithLabelValues(result.Instance).Set(float64(approvedCount))
	declined.WithLabelValues(result.Instance).Set(float64(declinedCount))
}
