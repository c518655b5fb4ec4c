package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	CategoryID          string   `json:"category_id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Address             string   `json:"address"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	ZipCode             string   `json:"zip_code"`
	TaskSize            string   `json:"task_size"`
	BudgetMin           float64  `json:"budget_min"`
	BudgetMax           float64  `json:"budget_max"`
	Urgency             string   `json:"urgency"`
	TaskDate            *string  `json:"task_date,omitempty"`
	TaskTime            *string  `json:"task_time,omitempty"`
	SpecialInstructions *string  `json:"special_instructions,omitempty"`
}

type TransitionRequest struct {
	Status     string   `json:"status"`
	FinalPrice *float64 `json:"final_price,omitempty"`
}

type ApplyRequest struct {
	Message       *string  `json:"message,omitempty"`
	ProposedPrice *float64 `json:"proposed_price,omitempty"`
	EstimatedTime *float64 `json:"estimated_time,omitempty"`
}

type UpdateApplicationRequest struct {
	Status string `json:"status"`
}

type SendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
}

type UpdateProfileRequest struct {
	FullName   *string  `json:"full_name,omitempty"`
	Username   *string  `json:"username,omitempty"`
	AvatarURL  *string  `json:"avatar_url,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Skills     *string  `json:"skills,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	City       *string  `json:"city,omitempty"`
	State      *string  `json:"state,omitempty"`
}
