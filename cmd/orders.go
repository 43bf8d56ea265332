/*
Copyright © 2026 Michael Putera Wardana <michaelputeraw@gmail.com>
*/
package cmd

import (
	"github.com/krobus00/invest-orders/internal/bootstrap"
	"github.com/spf13/cobra"
)

// ordersCmd groups the order lifecycle commands
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Order lifecycle operations",
}

var postOrderCmd = &cobra.Command{
	Use:   "post",
	Short: "Place an order",
	Long: `Place a limit, market or bestprice order. When --order-id is omitted a
random UUID is generated and used as the idempotency key.`,
	Args: cobra.NoArgs,
	Run:  bootstrap.PostOrder,
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel an order and print the cancellation time",
	Args:  cobra.NoArgs,
	Run:   bootstrap.CancelOrder,
}

var orderStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current state of an order",
	Args:  cobra.NoArgs,
	Run:   bootstrap.GetOrderState,
}

var listOrdersCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active orders of an account",
	Args:  cobra.NoArgs,
	Run:   bootstrap.GetOrders,
}

var replaceOrderCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace an order with a new quantity and price",
	Args:  cobra.NoArgs,
	Run:   bootstrap.ReplaceOrder,
}

func init() {
	bootstrap.BindOrdersFlags(ordersCmd)
	bootstrap.BindPostOrderFlags(postOrderCmd)
	bootstrap.BindOrderIDFlags(cancelOrderCmd)
	bootstrap.BindOrderIDFlags(orderStateCmd)
	bootstrap.BindReplaceOrderFlags(replaceOrderCmd)

	ordersCmd.AddCommand(postOrderCmd, cancelOrderCmd, orderStateCmd, listOrdersCmd, replaceOrderCmd)
	rootCmd.AddCommand(ordersCmd)
}
