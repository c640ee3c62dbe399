package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"cvpress/internal/config"
	"cvpress/internal/database"
	"cvpress/internal/resume"
)

func main() {
	var (
		username   = flag.String("username", "", "要创建的用户名（必填）")
		withSample = flag.Bool("with-sample", false, "同时为该用户创建一份示例简历")
		dbHost     = flag.String("db-host", "", "数据库 Host（可选，默认读 DATABASE_HOST）")
		dbPort     = flag.Int("db-port", 0, "数据库 Port（可选，默认读 DATABASE_PORT）")
		dbName     = flag.String("db-name", "", "数据库名（可选，默认读 POSTGRES_DB）")
		dbUser     = flag.String("db-user", "", "数据库用户（可选，默认读 POSTGRES_USER）")
		dbPass     = flag.String("db-password", "", "数据库密码（可选，默认读 POSTGRES_PASSWORD）")
		sslMode    = flag.String("db-sslmode", "", "数据库 SSLMODE（可选，默认读 DATABASE_SSLMODE）")
	)
	flag.Parse()

	u := strings.TrimSpace(*username)
	if u == "" {
		log.Fatal("missing required flag: --username")
	}

	dbCfg, err := loadDatabaseConfig(*dbHost, *dbPort, *dbName, *dbUser, *dbPass, *sslMode)
	if err != nil {
		log.Fatalf("load database config: %v", err)
	}

	db, err := database.InitDatabase(dbCfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.User
	switch err := db.Where("username = ?", u).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user %q already exists", u)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		log.Fatalf("query user: %v", err)
	}

	user := database.User{Username: u}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("已创建用户：\n")
	fmt.Printf("用户名: %s\n", u)
	fmt.Printf("用户 ID: %d（请求时放入 X-User-ID 头）\n", user.ID)

	if *withSample {
		content, err := json.Marshal(sampleDocument(u))
		if err != nil {
			log.Fatalf("marshal sample document: %v", err)
		}
		row := database.Resume{
			Title:   "示例简历",
			Content: content,
			UserID:  user.ID,
			Status:  "draft",
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatalf("create sample resume: %v", err)
		}
		fmt.Printf("已创建示例简历，ID: %d\n", row.ID)
	}
}

// sampleDocument 生成一份覆盖常用分区的演示文档。
func sampleDocument(username string) resume.Document {
	return resume.Document{
		Data: resume.Data{
			Personal: resume.PersonalInfo{
				FullName: username,
				Headline: "软件工程师",
				Email:    username + "@example.com",
				Summary:  "这是一份演示简历，用于验证预览、导出与溢出审计链路。",
			},
			Experience: []resume.ExperienceEntry{
				{
					ID:          "exp-1",
					Company:     "Example Corp",
					Position:    "后端工程师",
					StartDate:   "2022-01",
					Current:     true,
					Description: "负责核心服务的设计与维护。",
					Visible:     true,
				},
			},
			Education: []resume.EducationEntry{
				{
					ID:        "edu-1",
					School:    "Example University",
					Degree:    "学士",
					Field:     "计算机科学",
					StartDate: "2018-09",
					EndDate:   "2022-06",
					Visible:   true,
				},
			},
			Skills: []resume.SkillGroup{
				{ID: "sk-1", Category: "语言", Skills: []string{"Go", "SQL"}, Visible: true},
			},
		},
		Sections: []resume.Section{
			{ID: "s-personal", Title: "个人信息", Component: resume.ComponentPersonal, Visible: true, Order: 0},
			{ID: "s-experience", Title: "工作经历", Component: resume.ComponentExperience, Visible: true, Order: 1},
			{ID: "s-education", Title: "教育背景", Component: resume.ComponentEducation, Visible: true, Order: 2},
			{ID: "s-skills", Title: "技能", Component: resume.ComponentSkills, Visible: true, Order: 3},
		},
		Customization: resume.DefaultCustomization(),
		Template:      "classic",
	}
}

func loadDatabaseConfig(host string, port int, name, user, password, sslmode string) (config.DatabaseConfig, error) {
	if strings.TrimSpace(host) == "" {
		host = os.Getenv("DATABASE_HOST")
	}
	if port <= 0 {
		if env := strings.TrimSpace(os.Getenv("DATABASE_PORT")); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return config.DatabaseConfig{}, fmt.Errorf("parse DATABASE_PORT: %w", err)
			}
			port = p
		}
	}
	if strings.TrimSpace(name) == "" {
		name = os.Getenv("POSTGRES_DB")
	}
	if strings.TrimSpace(user) == "" {
		user = os.Getenv("POSTGRES_USER")
	}
	if strings.TrimSpace(password) == "" {
		password = os.Getenv("POSTGRES_PASSWORD")
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = os.Getenv("DATABASE_SSLMODE")
	}

	if strings.TrimSpace(host) == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = 5432
	}
	if strings.TrimSpace(sslmode) == "" {
		sslmode = "disable"
	}
	if strings.TrimSpace(name) == "" {
		return config.DatabaseConfig{}, errors.New("database name is required (POSTGRES_DB)")
	}
	if strings.TrimSpace(user) == "" {
		return config.DatabaseConfig{}, errors.New("database user is required (POSTGRES_USER)")
	}
	if strings.TrimSpace(password) == "" {
		return config.DatabaseConfig{}, errors.New("database password is required (POSTGRES_PASSWORD)")
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: password,
		SSLMode:  sslmode,
	}, nil
}
