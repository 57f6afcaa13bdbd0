package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func TestValidateTemplateTime(t *testing.T) {
	require.NoError(t, ValidateTemplateTime(&domain.ScheduleTemplate{
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}))

	// 跨夜班允许结束时刻早于开始时刻
	require.NoError(t, ValidateTemplateTime(&domain.ScheduleTemplate{
		StartTime: "22:00:00",
		EndTime:   "06:00:00",
	}))

	// HH:MM 格式同样接受
	require.NoError(t, ValidateTemplateTime(&domain.ScheduleTemplate{
		StartTime: "09:00",
		EndTime:   "17:30",
	}))

	require.Error(t, ValidateTemplateTime(&domain.ScheduleTemplate{
		StartTime: "九点",
		EndTime:   "17:00:00",
	}))
	require.Error(t, ValidateTemplateTime(&domain.ScheduleTemplate{
		StartTime: "09:00:00",
		EndTime:   "25:00:00",
	}))
}

func TestValidateShiftTime(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateShiftTime(start, start.Add(8*time.Hour)))
	require.Error(t, ValidateShiftTime(start, start))
	require.Error(t, ValidateShiftTime(start, start.Add(-time.Hour)))
}

func TestValidateTimezone(t *testing.T) {
	require.NoError(t, ValidateTimezone("Asia/Shanghai"))
	require.NoError(t, ValidateTimezone("UTC"))
	require.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateDaysOffSettings(t *testing.T) {
	require.NoError(t, ValidateDaysOffSettings(2, domain.DaysOffDistributionRandom))
	require.NoError(t, ValidateDaysOffSettings(0, domain.DaysOffDistributionWeekends))
	require.NoError(t, ValidateDaysOffSettings(7, domain.DaysOffDistributionWeekends))

	require.Error(t, ValidateDaysOffSettings(-1, domain.DaysOffDistributionRandom))
	require.Error(t, ValidateDaysOffSettings(8, domain.DaysOffDistributionRandom))
	require.Error(t, ValidateDaysOffSettings(2, domain.DaysOffDistribution("隔天休")))
}
