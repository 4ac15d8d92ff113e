package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskEnrichLead = "leads.enrich"

type EnrichLeadPayload struct {
	LeadID string `json:"leadId"`
}

func NewEnrichLeadTask(payload EnrichLeadPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEnrichLead, data), nil
}

func ParseEnrichLeadPayload(task *asynq.Task) (EnrichLeadPayload, error) {
	var payload EnrichLeadPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EnrichLeadPayload{}, err
	}
	return payload, nil
}
