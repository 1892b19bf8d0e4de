package models

type LibraryStats struct {
	NumBooks              int64 `json:"num_books" example:"12"`
	NumInstances          int64 `json:"num_instances" example:"30"`
	NumInstancesAvailable int64 `json:"num_instances_available" example:"7"`
	NumAuthors            int64 `json:"num_authors" example:"5"`
	NumVisits             int   `json:"num_visits" example:"3"`
}
