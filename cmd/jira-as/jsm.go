package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/ui"
)

var jsmCmd = &cobra.Command{
	Use:     "jsm",
	GroupID: "service",
	Short:   "Jira Service Management: requests, queues, approvals, SLAs",
}

var serviceDeskCmd = &cobra.Command{
	Use:   "service-desk",
	Short: "List service desks",
	Run: func(_ *cobra.Command, _ []string) {
		desks, err := client.GetServiceDesks(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(desks)
			return
		}
		for _, d := range desks {
			fmt.Printf("  %-4s %-10s %s\n", d.ID, d.ProjectKey, d.ProjectName)
		}
	},
}

var requestTypeCmd = &cobra.Command{
	Use:   "request-type <service-desk-id>",
	Short: "List a service desk's request types",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		types, err := client.GetRequestTypes(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(types)
			return
		}
		for _, t := range types {
			fmt.Printf("  %-4s %-24s %s\n", t.ID, t.Name, ui.RenderMuted(t.Description))
		}
	},
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create and inspect customer requests",
}

var requestCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer request",
	Run: func(cmd *cobra.Command, _ []string) {
		deskID, _ := cmd.Flags().GetString("service-desk")
		typeID, _ := cmd.Flags().GetString("type")
		summary, _ := cmd.Flags().GetString("summary")
		description, _ := cmd.Flags().GetString("description")

		if deskID == "" || typeID == "" || summary == "" {
			FatalErrorWithHint("missing request fields",
				"pass --service-desk, --type, and --summary")
		}

		request, err := client.CreateRequest(rootCtx, deskID, typeID, summary, description)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(request)
			return
		}
		okf("Created request %s", ui.AccentStyle.Render(request.IssueKey))
		if request.CurrentStatus != nil {
			fmt.Printf("  Status: %s\n", ui.RenderStatus(request.CurrentStatus.Status))
		}
	},
}

var requestGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a customer request",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		request, err := client.GetRequest(rootCtx, normalizeKeyArg(args[0]))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(request)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(request.IssueKey+"  "+request.Summary))
		if request.CurrentStatus != nil {
			fmt.Printf("  Status:       %s\n", ui.RenderStatus(request.CurrentStatus.Status))
		}
		fmt.Printf("  Service desk: %s\n", request.ServiceDeskID)
		fmt.Printf("  Request type: %s\n", request.RequestTypeID)
		if request.Reporter != nil {
			fmt.Printf("  Reporter:     %s\n", request.Reporter.DisplayName)
		}
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue <service-desk-id> [queue-id]",
	Short: "List a desk's queues, or the issues in one queue",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 1 {
			queues, err := client.GetQueues(rootCtx, args[0])
			if err != nil {
				FatalAPIError(err)
			}
			if jsonOutput {
				outputJSON(queues)
				return
			}
			for _, q := range queues {
				fmt.Printf("  %-4s %-28s %d issue(s)\n", q.ID, q.Name, q.IssueCount)
			}
			return
		}

		issues, err := client.GetQueueIssues(rootCtx, args[0], args[1])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(issues)
			return
		}
		printIssueList(issues)
	},
}

var approvalCmd = &cobra.Command{
	Use:   "approval",
	Short: "List and answer request approvals",
}

var approvalListCmd = &cobra.Command{
	Use:   "list <key>",
	Short: "List approvals on a request",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		approvals, err := client.GetApprovals(rootCtx, normalizeKeyArg(args[0]))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(approvals)
			return
		}
		for _, a := range approvals {
			decision := a.FinalDecision
			switch decision {
			case "approved":
				decision = ui.RenderPass(decision)
			case "declined":
				decision = ui.RenderFail(decision)
			default:
				decision = ui.RenderWarn(decision)
			}
			fmt.Printf("  %-4s %-24s %s\n", a.ID, a.Name, decision)
		}
	},
}

// answerApproval resolves the pending approval on a request and records the
// decision.
func answerApproval(key, approvalID, decision string) {
	if approvalID == "" {
		approvals, err := client.GetApprovals(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		for _, a := range approvals {
			if a.FinalDecision == "pending" {
				approvalID = a.ID
				break
			}
		}
		if approvalID == "" {
			FatalError("no pending approval on %s", key)
		}
	}

	if err := client.AnswerApproval(rootCtx, key, approvalID, decision); err != nil {
		FatalAPIError(err)
	}
	if jsonOutput {
		outputJSON(map[string]any{"key": key, "approval": approvalID, "decision": decision})
		return
	}
	okf("%sd approval %s on %s", decision, approvalID, key)
}

var approvalApproveCmd = &cobra.Command{
	Use:   "approve <key>",
	Short: "Approve the pending approval on a request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, _ := cmd.Flags().GetString("id")
		answerApproval(normalizeKeyArg(args[0]), id, "approve")
	},
}

var approvalDeclineCmd = &cobra.Command{
	Use:   "decline <key>",
	Short: "Decline the pending approval on a request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, _ := cmd.Flags().GetString("id")
		answerApproval(normalizeKeyArg(args[0]), id, "decline")
	},
}

var slaCmd = &cobra.Command{
	Use:   "sla <key>",
	Short: "Show SLA cycles for a request",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		slas, err := client.GetSLA(rootCtx, normalizeKeyArg(args[0]))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(slas)
			return
		}
		for _, s := range slas {
			state := ui.RenderPass(fmt.Sprintf("%dm remaining", s.RemainingMin))
			if s.Breached {
				state = ui.RenderFail("breached")
			}
			fmt.Printf("  %-28s %s\n", s.Name, state)
		}
	},
}

var organizationCmd = &cobra.Command{
	Use:     "organization",
	Aliases: []string{"org"},
	Short:   "Manage customer organizations",
}

var organizationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	Run: func(_ *cobra.Command, _ []string) {
		orgs, err := client.GetOrganizations(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(orgs)
			return
		}
		for _, o := range orgs {
			fmt.Printf("  %-5d %s\n", o.ID, o.Name)
		}
	},
}

var organizationCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an organization",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		org, err := client.CreateOrganization(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(org)
			return
		}
		okf("Created organization %d (%s)", org.ID, org.Name)
	},
}

var organizationUsersCmd = &cobra.Command{
	Use:   "users <organization-id>",
	Short: "List an organization's members",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		users, err := client.GetOrganizationUsers(rootCtx, intArg(args[0], "organization id"))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(users)
			return
		}
		for _, u := range users {
			fmt.Printf("  %-40s %s\n", u.AccountID, u.DisplayName)
		}
	},
}

var organizationAddCmd = &cobra.Command{
	Use:   "add <organization-id> <account-id>...",
	Short: "Add users to an organization",
	Args:  cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		orgID := intArg(args[0], "organization id")
		if err := client.AddUsersToOrganization(rootCtx, orgID, args[1:]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"organization": orgID, "added": args[1:]})
			return
		}
		okf("Added %d user(s) to organization %d", len(args)-1, orgID)
	},
}

var organizationRemoveCmd = &cobra.Command{
	Use:   "remove <organization-id> <account-id>...",
	Short: "Remove users from an organization",
	Args:  cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		orgID := intArg(args[0], "organization id")
		if err := client.RemoveUsersFromOrganization(rootCtx, orgID, args[1:]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"organization": orgID, "removed": args[1:]})
			return
		}
		okf("Removed %d user(s) from organization %d", len(args)-1, orgID)
	},
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage a service desk's customers",
}

var customerListCmd = &cobra.Command{
	Use:   "list <service-desk-id>",
	Short: "List a desk's customers",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		customers, err := client.GetCustomers(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(customers)
			return
		}
		for _, c := range customers {
			fmt.Printf("  %-40s %s\n", c.AccountID, c.DisplayName)
		}
	},
}

var customerAddCmd = &cobra.Command{
	Use:   "add <service-desk-id> <account-id>...",
	Short: "Add customers to a desk",
	Args:  cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		if err := client.AddCustomers(rootCtx, args[0], args[1:]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"serviceDesk": args[0], "added": args[1:]})
			return
		}
		okf("Added %d customer(s)", len(args)-1)
	},
}

func init() {
	requestCreateCmd.Flags().String("service-desk", "", "Service desk id")
	requestCreateCmd.Flags().StringP("type", "t", "", "Request type id")
	requestCreateCmd.Flags().String("summary", "", "Request summary")
	requestCreateCmd.Flags().StringP("description", "d", "", "Request description")
	approvalApproveCmd.Flags().String("id", "", "Approval id (default: the pending approval)")
	approvalDeclineCmd.Flags().String("id", "", "Approval id (default: the pending approval)")

	requestCmd.AddCommand(requestCreateCmd, requestGetCmd)
	approvalCmd.AddCommand(approvalListCmd, approvalApproveCmd, approvalDeclineCmd)
	organizationCmd.AddCommand(organizationListCmd, organizationCreateCmd,
		organizationUsersCmd, organizationAddCmd, organizationRemoveCmd)
	customerCmd.AddCommand(customerListCmd, customerAddCmd)
	jsmCmd.AddCommand(serviceDeskCmd, requestTypeCmd, requestCmd, queueCmd,
		approvalCmd, slaCmd, organizationCmd, customerCmd)
	rootCmd.AddCommand(jsmCmd)
}
