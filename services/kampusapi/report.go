package kampusapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kampushq/kampus/core/report"
)

var _ report.Repository = (*Client)(nil)

func (c *Client) CreateEnrollmentListJob(ctx context.Context, req report.EnrollmentListRequest) (report.Job, error) {
	payload := struct {
		Kind string `json:"kind"`
		report.EnrollmentListRequest
	}{report.KindEnrollmentList, req}
	return c.createJob(ctx, payload)
}

func (c *Client) CreateGroupBulletinJob(ctx context.Context, req report.GroupBulletinRequest) (report.Job, error) {
	payload := struct {
		Kind string `json:"kind"`
		report.GroupBulletinRequest
	}{report.KindGroupBulletin, req}
	return c.createJob(ctx, payload)
}

func (c *Client) CreateStudentBulletinJob(ctx context.Context, req report.StudentBulletinRequest) (report.Job, error) {
	payload := struct {
		Kind string `json:"kind"`
		report.StudentBulletinRequest
	}{report.KindStudentBulletin, req}
	return c.createJob(ctx, payload)
}

func (c *Client) createJob(ctx context.Context, payload interface{}) (report.Job, error) {
	var job report.Job
	if err := c.do(ctx, http.MethodPost, "/v1/report-jobs", nil, payload, &job); err != nil {
		return report.Job{}, err
	}
	return job, nil
}

func (c *Client) GetJob(ctx context.Context, id int) (report.Job, error) {
	var job report.Job
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/report-jobs/%d", id), nil, nil, &job); err != nil {
		return report.Job{}, err
	}
	return job, nil
}

func (c *Client) DownloadArtifact(ctx context.Context, id int) (report.Artifact, error) {
	data, headers, err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/v1/report-jobs/%d/download", id))
	if err != nil {
		return report.Artifact{}, err
	}
	return report.Artifact{
		Data:        data,
		Filename:    report.FilenameFromDisposition(headers.Get("Content-Disposition")),
		ContentType: headers.Get("Content-Type"),
	}, nil
}
