package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/kampushq/kampus/core/student"
)

func (cli *commandLine) students(search string, groupID int, inactive bool, page, size int) error {
	if err := cli.requireSession(); err != nil {
		return err
	}

	filter := student.QueryFilter{
		Search:   search,
		GroupID:  groupID,
		Page:     page,
		PageSize: size,
	}
	if !inactive {
		active := true
		filter.IsActive = &active
	}

	res, err := student.NewService(cli.client).Filter(context.Background(), filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDOCUMENT\tGROUP\tACTIVE")
	for _, st := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", st.ID, st.Name, st.Document, st.GroupName, st.IsActive)
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "\npage %d/%d (%d students)\n", res.Page, res.TotalPages(), res.Total)
	return nil
}
