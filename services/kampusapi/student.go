package kampusapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kampushq/kampus/core/student"
)

var _ student.Repository = (*Client)(nil)

func (c *Client) FilterStudents(ctx context.Context, filter student.QueryFilter) (student.Page, error) {
	var page student.Page
	if err := c.do(ctx, http.MethodGet, "/v1/students", filter.Values(), nil, &page); err != nil {
		return student.Page{}, err
	}
	return page, nil
}

func (c *Client) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var st student.Student
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/students/%d", id), nil, nil, &st); err != nil {
		return student.Student{}, err
	}
	return st, nil
}
