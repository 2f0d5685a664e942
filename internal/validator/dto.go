package validator

// Request DTOs shared by handlers and services. Validation tags are
// enforced by Validator.ValidateStruct before any business logic runs.

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,alphanum,min=3,max=30"`
	FirstName       string `json:"first_name" validate:"required,max=50"`
	LastName        string `json:"last_name" validate:"required,max=50"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	// Identifier accepts a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type CourseCreateRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Instructor  string   `json:"instructor" validate:"required,max=100"`
	Topics      []string `json:"topics" validate:"required,min=1,dive,required"`
	Price       int64    `json:"price" validate:"gte=0"`
	Thumbnail   *string  `json:"thumbnail_image,omitempty"`
}

type CourseUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty"`
	Instructor  *string  `json:"instructor,omitempty" validate:"omitempty,max=100"`
	Topics      []string `json:"topics,omitempty" validate:"omitempty,min=1,dive,required"`
	Price       *int64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Thumbnail   *string  `json:"thumbnail_image,omitempty"`
}

type ModuleCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Order       *int    `json:"order,omitempty" validate:"omitempty,gte=1"`
	VideoPath   *string `json:"video_content,omitempty"`
	PDFPath     *string `json:"pdf_content,omitempty"`
}

type ModuleUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	VideoPath   *string `json:"video_content,omitempty"`
	PDFPath     *string `json:"pdf_content,omitempty"`
}

type ReorderModulesRequest struct {
	ModuleOrder []ModuleOrderEntry `json:"module_order" validate:"required,min=1,dive"`
}

type ModuleOrderEntry struct {
	ID    uint `json:"id" validate:"required"`
	Order int  `json:"order" validate:"required,gte=1"`
}

type UserUpdateRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Username  *string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

type TopUpRequest struct {
	Increment int64 `json:"increment" validate:"required,gt=0"`
}
