package domain

import "time"

type DaysOffDistribution string

const (
	DaysOffDistributionRandom   DaysOffDistribution = "random"
	DaysOffDistributionWeekends DaysOffDistribution = "weekends"
)

type Organization struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	Timezone            string              `json:"timezone"`
	DaysOffPerWeek      int32               `json:"daysOffPerWeek"`
	DaysOffDistribution DaysOffDistribution `json:"daysOffDistribution"`
	CreatedAt           time.Time           `json:"createdAt"`
	Version             int32               `json:"-"`
}
