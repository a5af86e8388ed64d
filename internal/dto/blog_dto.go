package dto

type CreateBlogPostRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	CoverURL  string `json:"cover_url"`
	Published *bool  `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	CoverURL  *string `json:"cover_url"`
	Published *bool   `json:"published"`
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}
