package schedule

import (
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// fallbackTemplate 在组织没有任何自建 on_shift 模板时兜底使用
var fallbackTemplate = &domain.ScheduleTemplate{
	Name:      "默认班次",
	ShiftType: domain.ShiftTypeOnShift,
	StartTime: "09:00:00",
	EndTime:   "17:00:00",
	Color:     "#3788d8",
}

// AutoFillParams 是自动排班的全部输入
type AutoFillParams struct {
	Range          DateRange
	Roster         []*domain.User // 有序的员工名单，顺序影响休息日错开和模板轮换
	DaysOffPerWeek int
	Distribution   domain.DaysOffDistribution
	Templates      []*domain.ScheduleTemplate // 用户自建的 on_shift 模板
	DayOffTemplate *domain.ScheduleTemplate   // 默认 Day Off 模板，可以为 nil
	Existing       []*domain.Shift            // 区间内已存在的班次
	Location       *time.Location
}

// Planner 为一段日期区间内的整个名单批量生成班次。
// Plan 本身是纯函数，只负责算出要创建哪些班次；
// 实际的写入由调用方逐条执行并收集错误（尽力而为，不是原子操作）
type Planner struct {
	params *AutoFillParams
}

func NewPlanner(params *AutoFillParams) *Planner {
	return &Planner{params: params}
}

// Plan 返回计划创建的班次列表。
// 对每个 (员工, 日期)：已有班次的跳过；在员工休息日集合内的生成 Day Off 班次
// （没有 Day Off 模板时跳过）；其余按员工序号轮换模板生成 on_shift 班次。
// 对同一个区间执行两次，第二次不会产生任何新班次（每天都已经有班次了）
func (p *Planner) Plan() []*domain.Shift {
	days := p.params.Range.Days
	daysOffSets := p.daysOffSets(days)

	planned := make([]*domain.Shift, 0)

	for _, day := range days {
		for i, employee := range p.params.Roster {
			dateKey := LocalDateKey(day, p.params.Location)

			// 已有班次的那天直接跳过，包括本轮刚刚计划出来的
			if HasConflict(p.params.Existing, employee.ID, dateKey, 0, p.params.Location) ||
				HasConflict(planned, employee.ID, dateKey, 0, p.params.Location) {
				continue
			}

			var tpl *domain.ScheduleTemplate
			if daysOffSets[i][dateKey] {
				if p.params.DayOffTemplate == nil {
					continue
				}
				tpl = p.params.DayOffTemplate
			} else if len(p.params.Templates) > 0 {
				// 按员工序号轮换模板，让不同员工拿到不同的班次组合
				tpl = p.params.Templates[i%len(p.params.Templates)]
			} else {
				tpl = fallbackTemplate
			}

			shift, err := ApplyTemplate(tpl, day, employee.ID, p.params.Location)
			if err != nil {
				// 模板时刻格式错误只影响这一条，不中断整个循环
				continue
			}
			shift.OrganizationID = employee.OrganizationID

			planned = append(planned, shift)
		}
	}

	return planned
}

// daysOffSets 为名单中的每个员工计算区间内的休息日集合（以本地日期为键）
func (p *Planner) daysOffSets(days []time.Time) []map[string]bool {
	sets := make([]map[string]bool, len(p.params.Roster))

	switch p.params.Distribution {
	case domain.DaysOffDistributionWeekends:
		// 周末模式：所有人都休周六周日
		for i := range sets {
			sets[i] = make(map[string]bool)
			for _, day := range days {
				weekday := day.In(p.params.Location).Weekday()
				if weekday == time.Saturday || weekday == time.Sunday {
					sets[i][LocalDateKey(day, p.params.Location)] = true
				}
			}
		}
	default:
		// 随机错开模式：按周处理，组内尽量不让两个人休同一天
		weeks := chunkWeeks(days)
		claimed := make(map[string]bool) // 已经被某个员工占用的休息日

		for i := range sets {
			sets[i] = make(map[string]bool)

			for _, week := range weeks {
				weekLen := len(week)
				quota := p.params.DaysOffPerWeek
				if quota > weekLen {
					quota = weekLen
				}

				for k := 0; k < quota; k++ {
					// 等间距取下标，再按员工序号错开，
					// 这样相邻员工的休息日天然岔开而不是挤在同一天
					idx := (k*weekLen/quota + i) % weekLen

					chosen := -1
					for step := 0; step < weekLen; step++ {
						cand := (idx + step) % weekLen
						key := LocalDateKey(week[cand], p.params.Location)
						if !claimed[key] && !sets[i][key] {
							chosen = cand
							break
						}
					}
					if chosen == -1 {
						// 整周都被占满了，接受重叠，退回最初算出来的那天。
						// 人少而休息日多的时候没有零重叠的保证，这只是启发式
						chosen = idx
					}

					key := LocalDateKey(week[chosen], p.params.Location)
					claimed[key] = true
					sets[i][key] = true
				}
			}
		}
	}

	return sets
}

// chunkWeeks 把有序日期列表按 7 天切成一段段的周（最后一段可能不满 7 天）
func chunkWeeks(days []time.Time) [][]time.Time {
	weeks := make([][]time.Time, 0, (len(days)+6)/7)
	for start := 0; start < len(days); start += 7 {
		end := start + 7
		if end > len(days) {
			end = len(days)
		}
		weeks = append(weeks, days[start:end])
	}
	return weeks
}
