package database

import (
	"fmt"
	"log"
	"placement_prep_backend/internal/config"
	"placement_prep_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedCatalog(db)

	return db, nil
}

// Migrate runs AutoMigrate for every model. Shared with the test setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.SkillGap{},
		&model.LearningResource{},
		&model.Roadmap{},
		&model.RoadmapWeek{},
		&model.RoadmapDay{},
		&model.RoadmapTask{},
	)
}

// SeedCatalog inserts the default learning-resource catalog when the table is
// empty. The catalog is reference data: roadmap assembly only reads it.
func SeedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.LearningResource{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.LearningResource{
		{Skill: "python", Type: model.ResourceArticle, Title: "Python for Beginners", URL: "https://www.codecademy.com/learn/learn-python-3", DurationMinutes: 60, Level: "beginner"},
		{Skill: "python", Type: model.ResourceVideo, Title: "Python Tutorial - Full Course", URL: "https://www.youtube.com/watch?v=_uQrJ0TkZlc", DurationMinutes: 60, Level: "beginner"},
		{Skill: "python", Type: model.ResourcePractice, Title: "HackerRank Python", URL: "https://www.hackerrank.com/domains/python", DurationMinutes: 45, Level: "all"},
		{Skill: "python", Type: model.ResourceOther, Title: "Official Python Docs", URL: "https://docs.python.org/3/", DurationMinutes: 30, Level: "all"},
		{Skill: "java", Type: model.ResourceArticle, Title: "Java Programming Masterclass", URL: "https://www.udemy.com/course/java-the-complete-java-developer-course/", DurationMinutes: 60, Level: "beginner"},
		{Skill: "java", Type: model.ResourceVideo, Title: "Java Full Course", URL: "https://www.youtube.com/watch?v=eIrMbAQSU34", DurationMinutes: 60, Level: "beginner"},
		{Skill: "java", Type: model.ResourcePractice, Title: "LeetCode Java", URL: "https://leetcode.com/problemset/all/", DurationMinutes: 45, Level: "all"},
		{Skill: "dsa", Type: model.ResourceArticle, Title: "Data Structures & Algorithms", URL: "https://www.coursera.org/specializations/data-structures-algorithms", DurationMinutes: 60, Level: "beginner"},
		{Skill: "dsa", Type: model.ResourceVideo, Title: "DSA Full Course", URL: "https://www.youtube.com/watch?v=8hly31xKli0", DurationMinutes: 60, Level: "beginner"},
		{Skill: "dsa", Type: model.ResourcePractice, Title: "LeetCode", URL: "https://leetcode.com/", DurationMinutes: 45, Level: "all"},
		{Skill: "dsa", Type: model.ResourcePractice, Title: "Codeforces", URL: "https://codeforces.com/", DurationMinutes: 60, Level: "intermediate"},
		{Skill: "system design", Type: model.ResourceArticle, Title: "Grokking System Design", URL: "https://www.educative.io/courses/grokking-the-system-design-interview", DurationMinutes: 60, Level: "intermediate"},
		{Skill: "system design", Type: model.ResourceVideo, Title: "System Design Primer", URL: "https://www.youtube.com/c/SystemDesignInterview", DurationMinutes: 45, Level: "intermediate"},
		{Skill: "react", Type: model.ResourceOther, Title: "React Official Docs", URL: "https://react.dev/", DurationMinutes: 45, Level: "beginner"},
		{Skill: "react", Type: model.ResourceArticle, Title: "React - The Complete Guide", URL: "https://www.udemy.com/course/react-the-complete-guide-incl-redux/", DurationMinutes: 60, Level: "beginner"},
		{Skill: "react", Type: model.ResourcePractice, Title: "Frontend Mentor Projects", URL: "https://www.frontendmentor.io/", DurationMinutes: 60, Level: "all"},
		{Skill: "communication", Type: model.ResourceArticle, Title: "Business Communication", URL: "https://www.coursera.org/learn/wharton-communication-skills", DurationMinutes: 30, Level: "beginner"},
		{Skill: "communication", Type: model.ResourcePractice, Title: "Daily Speaking Practice", URL: "https://www.toastmasters.org/", DurationMinutes: 20, Level: "all"},
		{Skill: "communication", Type: model.ResourceVideo, Title: "TED Talks Communication", URL: "https://www.ted.com/topics/communication", DurationMinutes: 20, Level: "all"},
		{Skill: "oop", Type: model.ResourceArticle, Title: "Object-Oriented Programming", URL: "https://www.coursera.org/learn/object-oriented-java", DurationMinutes: 60, Level: "beginner"},
		{Skill: "oop", Type: model.ResourceVideo, Title: "OOP Concepts Explained", URL: "https://www.youtube.com/watch?v=pTB0EiLXUC8", DurationMinutes: 45, Level: "beginner"},
		{Skill: "oop", Type: model.ResourcePractice, Title: "Design Patterns Practice", URL: "https://refactoring.guru/design-patterns", DurationMinutes: 45, Level: "intermediate"},
		{Skill: "sql", Type: model.ResourceArticle, Title: "SQL Complete Course", URL: "https://www.codecademy.com/learn/learn-sql", DurationMinutes: 60, Level: "beginner"},
		{Skill: "sql", Type: model.ResourcePractice, Title: "SQLZoo", URL: "https://sqlzoo.net/", DurationMinutes: 30, Level: "beginner"},
		{Skill: "sql", Type: model.ResourcePractice, Title: "HackerRank SQL", URL: "https://www.hackerrank.com/domains/sql", DurationMinutes: 45, Level: "all"},
		{Skill: "javascript", Type: model.ResourceArticle, Title: "JavaScript Complete Guide", URL: "https://javascript.info/", DurationMinutes: 60, Level: "beginner"},
		{Skill: "javascript", Type: model.ResourceVideo, Title: "JavaScript Crash Course", URL: "https://www.youtube.com/watch?v=hdI2bqOjy3c", DurationMinutes: 60, Level: "beginner"},
		{Skill: "javascript", Type: model.ResourcePractice, Title: "JavaScript30", URL: "https://javascript30.com/", DurationMinutes: 45, Level: "intermediate"},
	}
	for i := range defaults {
		defaults[i].Enabled = true
		db.Create(&defaults[i])
	}
}
