package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/config"
	"github.com/teamcal-dev/shift-calendar/backend/internal/repository"
	"github.com/teamcal-dev/shift-calendar/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入团队和地点, 3: 插入常用班次模板, 4: 一键插入全部演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 所有种子数据都挂在默认组织下
	org, err := seed.EnsureOrganization(repo, cfg)
	if err != nil {
		logger.Error("无法创建默认组织", slog.String("error", err.Error()))
		return
	}
	if err := seed.EnsureDefaultTemplates(repo, org.ID); err != nil {
		logger.Error("无法创建内置模板", slog.String("error", err.Error()))
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := seed.SeedEmployees(repo, cfg, org.ID, n)
			slog.Info("插入员工成功", slog.Int("count", cnt))
		}
	case 2:
		teams := seed.SeedTeams(repo, org.ID)
		locations := seed.SeedLocations(repo, org.ID)
		slog.Info("插入团队和地点成功", slog.Int("teams", teams), slog.Int("locations", locations))
	case 3:
		cnt := seed.SeedScheduleTemplates(repo, org.ID)
		slog.Info("插入班次模板成功", slog.Int("count", cnt))
	case 4:
		employees := seed.SeedEmployees(repo, cfg, org.ID, n)
		teams := seed.SeedTeams(repo, org.ID)
		locations := seed.SeedLocations(repo, org.ID)
		templates := seed.SeedScheduleTemplates(repo, org.ID)
		slog.Info("插入演示数据完成",
			slog.Int("employees", employees),
			slog.Int("teams", teams),
			slog.Int("locations", locations),
			slog.Int("templates", templates),
		)
	default:
		slog.Error("指定的操作非法")
	}
}
