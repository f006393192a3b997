package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"project-groups-backend/internal/config"
	"project-groups-backend/internal/database"
	"project-groups-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type CollegeData struct {
	Name string `yaml:"name"`
}

type DepartmentData struct {
	Name        string `yaml:"name"`
	CollegeName string `yaml:"college_name"`
}

type UserData struct {
	FullName       string `yaml:"full_name"`
	Username       string `yaml:"username"`
	Email          string `yaml:"email"`
	Role           string `yaml:"role"`
	DepartmentName string `yaml:"department_name,omitempty"`
	CollegeName    string `yaml:"college_name,omitempty"`
	IsActive       bool   `yaml:"is_active"`
}

type ProjectData struct {
	Title          string `yaml:"title"`
	Type           string `yaml:"type"`
	Description    string `yaml:"description,omitempty"`
	State          string `yaml:"state"`
	DepartmentName string `yaml:"department_name,omitempty"`
}

type CollegesFile struct {
	Colleges []CollegeData `yaml:"colleges"`
}

type DepartmentsFile struct {
	Departments []DepartmentData `yaml:"departments"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type ProjectsFile struct {
	Projects []ProjectData `yaml:"projects"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	colleges, err := loadColleges(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load colleges: %w", err)
	}

	departments, err := loadDepartments(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	projects, err := loadProjects(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	// Create colleges first
	collegeMap := make(map[string]*models.College)
	collegeCreated := 0
	for _, collegeData := range colleges {
		college, created, err := createCollege(db, collegeData)
		if err != nil {
			return fmt.Errorf("failed to create college %s: %w", collegeData.Name, err)
		}
		collegeMap[collegeData.Name] = college
		if created {
			collegeCreated++
		}
	}
	log.Printf("📋 Colleges: %d created, %d total", collegeCreated, len(colleges))

	// Create departments
	departmentMap := make(map[string]*models.Department)
	departmentCreated := 0
	for _, departmentData := range departments {
		department, created, err := createDepartment(db, departmentData, collegeMap)
		if err != nil {
			return fmt.Errorf("failed to create department %s: %w", departmentData.Name, err)
		}
		departmentMap[departmentData.Name] = department
		if created {
			departmentCreated++
		}
	}
	log.Printf("📋 Departments: %d created, %d total", departmentCreated, len(departments))

	// Create users
	userCreated := 0
	for _, userData := range users {
		_, created, err := createUser(db, userData, collegeMap, departmentMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Username, err)
		}
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	// Create projects
	projectCreated := 0
	for _, projectData := range projects {
		_, created, err := createProject(db, projectData, departmentMap)
		if err != nil {
			return fmt.Errorf("failed to create project %s: %w", projectData.Title, err)
		}
		if created {
			projectCreated++
		}
	}
	log.Printf("📋 Projects: %d created, %d total", projectCreated, len(projects))

	return nil
}

func loadColleges(dataDir string) ([]CollegeData, error) {
	var allColleges []CollegeData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "colleges") {
			var file CollegesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allColleges = append(allColleges, file.Colleges...)
		}
		return nil
	})

	return allColleges, err
}

func loadDepartments(dataDir string) ([]DepartmentData, error) {
	var allDepartments []DepartmentData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "departments") {
			var file DepartmentsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allDepartments = append(allDepartments, file.Departments...)
		}
		return nil
	})

	return allDepartments, err
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "users") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func loadProjects(dataDir string) ([]ProjectData, error) {
	var allProjects []ProjectData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "projects") {
			var file ProjectsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allProjects = append(allProjects, file.Projects...)
		}
		return nil
	})

	return allProjects, err
}

func createCollege(db *gorm.DB, collegeData CollegeData) (*models.College, bool, error) {
	var existing models.College
	if err := db.Where("name = ?", collegeData.Name).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	college := &models.College{
		Name: collegeData.Name,
	}
	if err := db.Create(college).Error; err != nil {
		return nil, false, err
	}
	return college, true, nil
}

func createDepartment(db *gorm.DB, departmentData DepartmentData, collegeMap map[string]*models.College) (*models.Department, bool, error) {
	college, ok := collegeMap[departmentData.CollegeName]
	if !ok {
		return nil, false, fmt.Errorf("college %q not found", departmentData.CollegeName)
	}

	var existing models.Department
	if err := db.Where("name = ? AND college_id = ?", departmentData.Name, college.ID).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	department := &models.Department{
		Name:      departmentData.Name,
		CollegeID: college.ID,
	}
	if err := db.Create(department).Error; err != nil {
		return nil, false, err
	}
	return department, true, nil
}

func createUser(db *gorm.DB, userData UserData, collegeMap map[string]*models.College, departmentMap map[string]*models.Department) (*models.User, bool, error) {
	var existing models.User
	if err := db.Where("username = ?", userData.Username).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	role := models.UserRole(userData.Role)
	if !role.IsValid() {
		return nil, false, fmt.Errorf("invalid role %q", userData.Role)
	}

	user := &models.User{
		FullName: userData.FullName,
		Username: userData.Username,
		Email:    userData.Email,
		Role:     role,
		IsActive: userData.IsActive,
	}
	if userData.DepartmentName != "" {
		department, ok := departmentMap[userData.DepartmentName]
		if !ok {
			return nil, false, fmt.Errorf("department %q not found", userData.DepartmentName)
		}
		user.DepartmentID = &department.ID
	}
	if userData.CollegeName != "" {
		college, ok := collegeMap[userData.CollegeName]
		if !ok {
			return nil, false, fmt.Errorf("college %q not found", userData.CollegeName)
		}
		user.CollegeID = &college.ID
	}

	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func createProject(db *gorm.DB, projectData ProjectData, departmentMap map[string]*models.Department) (*models.Project, bool, error) {
	var existing models.Project
	if err := db.Where("title = ?", projectData.Title).First(&existing).Error; err == nil {
		return &existing, false, nil
	}

	state := models.ProjectState(projectData.State)
	if projectData.State == "" {
		state = models.ProjectStatePendingApproval
	}
	if !state.IsValid() {
		return nil, false, fmt.Errorf("invalid project state %q", projectData.State)
	}

	project := &models.Project{
		Title:       projectData.Title,
		Type:        projectData.Type,
		Description: projectData.Description,
		State:       state,
	}
	if projectData.DepartmentName != "" {
		department, ok := departmentMap[projectData.DepartmentName]
		if !ok {
			return nil, false, fmt.Errorf("department %q not found", projectData.DepartmentName)
		}
		project.DepartmentID = &department.ID
	}

	if err := db.Create(project).Error; err != nil {
		return nil, false, err
	}
	return project, true, nil
}
