package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/kampushq/kampus/core"
	"github.com/kampushq/kampus/core/report"
	"github.com/kampushq/kampus/storage/history"
)

type reportFlags struct {
	groupID      int
	periodID     int
	yearID       int
	enrollmentID int
	emailTo      string
}

func (cli *commandLine) printReportUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  report enrollment-list -group N -period N -year N   - enrollment list of a group")
	fmt.Fprintln(cli.out, "  report group-bulletin -group N -period N            - bulletins of a whole group")
	fmt.Fprintln(cli.out, "  report student-bulletin -enrollment N -period N     - bulletin of one enrollment")
	fmt.Fprintln(cli.out, "Common flags:")
	fmt.Fprintln(cli.out, "  -email-to ADDRESS - also email the generated file")
}

func (cli *commandLine) report(kind string, flags reportFlags) error {
	if err := cli.requireSession(); err != nil {
		return err
	}

	svc := report.NewService(cli.client, cli.logger, cli.reportOpts...)
	ctx := context.Background()
	onUpdate := func(job report.Job) {
		if job.Progress != nil {
			fmt.Fprintf(cli.out, "  %s %d%%\n", job.Status, *job.Progress)
		} else {
			fmt.Fprintf(cli.out, "  %s\n", job.Status)
		}
	}

	entry := history.Entry{Kind: kind, PeriodID: flags.periodID}
	var artifact report.Artifact
	var err error
	switch kind {
	case report.KindEnrollmentList:
		req := report.EnrollmentListRequest{GroupID: flags.groupID, PeriodID: flags.periodID, YearID: flags.yearID}
		if err = req.Validate(cli.validate); err != nil {
			return err
		}
		entry.TargetID = flags.groupID
		artifact, err = svc.EnrollmentList(ctx, req, onUpdate)
	case report.KindGroupBulletin:
		req := report.GroupBulletinRequest{GroupID: flags.groupID, PeriodID: flags.periodID}
		if err = req.Validate(cli.validate); err != nil {
			return err
		}
		entry.TargetID = flags.groupID
		artifact, err = svc.GroupBulletin(ctx, req, onUpdate)
	case report.KindStudentBulletin:
		req := report.StudentBulletinRequest{EnrollmentID: flags.enrollmentID, PeriodID: flags.periodID}
		if err = req.Validate(cli.validate); err != nil {
			return err
		}
		entry.TargetID = flags.enrollmentID
		artifact, err = svc.StudentBulletin(ctx, req, onUpdate)
	default:
		cli.printReportUsage()
		return errHelp
	}

	if err != nil {
		if jobErr, ok := err.(*report.JobFailedError); ok {
			entry.Status = report.StatusFailed
			entry.ErrorMessage = jobErr.Job.ErrorMessage
			cli.recordRun(entry)
		} else if errors.Is(err, report.ErrTimeout) {
			entry.Status = history.StatusTimedOut
			entry.ErrorMessage = err.Error()
			cli.recordRun(entry)
		}
		return err
	}

	path, err := artifact.Save(cli.conf.DownloadDir)
	if err != nil {
		return err
	}
	entry.Status = report.StatusSucceeded
	entry.Filename = artifact.Filename
	entry.SavedPath = path
	cli.recordRun(entry)
	fmt.Fprintf(cli.out, "Saved %s\n", path)

	if flags.emailTo != "" {
		if err = cli.emailArtifact(flags.emailTo, kind, artifact); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Emailed %s to %s\n", artifact.Filename, flags.emailTo)
	}
	return nil
}

// recordRun logs the run locally; failure to do so never fails the command.
func (cli *commandLine) recordRun(entry history.Entry) {
	repo, err := history.Open(cli.conf.HistoryPath)
	if err != nil {
		cli.logger.Warn(fmt.Sprintf("opening history store: %v", err))
		return
	}
	defer repo.Close()
	if _, err = repo.Record(context.Background(), entry); err != nil {
		cli.logger.Warn(fmt.Sprintf("recording report run: %v", err))
	}
}

func (cli *commandLine) emailArtifact(to, kind string, artifact report.Artifact) error {
	msg := &core.EmailMessage{
		To:          []mail.Address{{Address: to}},
		Subject:     fmt.Sprintf("[%s] %s report", cli.conf.AppName, kind),
		TextContent: fmt.Sprintf("Attached: %s, generated %s.", artifact.Filename, time.Now().Format("2006-01-02 15:04")),
	}
	if err := msg.Attach(artifact.Data, artifact.Filename, artifact.ContentType); err != nil {
		return err
	}
	cli.mailSvc.SendMessages(msg)
	return nil
}

func (cli *commandLine) history(limit int) error {
	repo, err := history.Open(cli.conf.HistoryPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cli.out, "No report runs recorded yet")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-16s  %-9s", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Status)
		if e.SavedPath != "" {
			line += "  " + e.SavedPath
		}
		if e.ErrorMessage != "" {
			line += "  (" + e.ErrorMessage + ")"
		}
		fmt.Fprintln(cli.out, line)
	}
	return nil
}
