package utils

import (
	"fmt"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// ValidateTemplateTime 检查模板的起止时刻格式。
// 结束时刻允许早于开始时刻（表示跨夜班），所以这里只检查格式不检查先后
func ValidateTemplateTime(tpl *domain.ScheduleTemplate) error {
	if _, err := parseClock(tpl.StartTime); err != nil {
		return fmt.Errorf("开始时刻格式错误: %s", tpl.StartTime)
	}
	if _, err := parseClock(tpl.EndTime); err != nil {
		return fmt.Errorf("结束时刻格式错误: %s", tpl.EndTime)
	}
	return nil
}

// ValidateShiftTime 检查班次的绝对起止时刻
func ValidateShiftTime(start time.Time, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("结束时刻必须晚于开始时刻")
	}
	return nil
}

// ValidateTimezone 检查时区名是否合法（IANA 名称）
func ValidateTimezone(name string) error {
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("无效的时区: %s", name)
	}
	return nil
}

// ValidateDaysOffSettings 检查组织的休息日设置
func ValidateDaysOffSettings(daysOffPerWeek int32, distribution domain.DaysOffDistribution) error {
	if daysOffPerWeek < 0 || daysOffPerWeek > 7 {
		return fmt.Errorf("每周休息天数必须在 0 到 7 之间")
	}
	switch distribution {
	case domain.DaysOffDistributionRandom, domain.DaysOffDistributionWeekends:
		return nil
	default:
		return fmt.Errorf("无效的休息日分配方式: %s", distribution)
	}
}
