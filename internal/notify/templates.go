package notify

import (
	"fmt"

	"afrieats_backend/internal/models"
)

func linesTableHTML(lines []models.CartLine) string {
	rows := ""
	for _, line := range lines {
		rows += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s (%s)</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">£%.2f</td>
				<td style="padding: 10px; border: 1px solid #ddd;">£%.2f</td>
			</tr>`, line.Name, line.Variant.Label, line.Quantity, line.Variant.Price, line.LineTotal())
	}
	return rows
}

func receiptHTML(order models.OrderSummary, lines []models.CartLine) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Order confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Your order is confirmed</h2>
		<p>Hi,</p>
		<p>Thanks for ordering with AfriEats — your payment went through and the kitchen has your order.</p>

		<h3>Order %s</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Item</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">£%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			See you soon,<br>
			<strong>The AfriEats team</strong>
		</p>
	</div>
</body>
</html>`, order.OrderID, linesTableHTML(lines), float64(order.Amount)/100)
}

func kitchenHTML(order models.OrderSummary, lines []models.CartLine) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>New order</title>
</head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>New paid order %s</h2>
	<p>Customer: %s</p>
	<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
		<tbody>
			%s
		</tbody>
	</table>
	<p style="font-weight: bold;">Total: £%.2f</p>
</body>
</html>`, order.OrderID, order.Email, linesTableHTML(lines), float64(order.Amount)/100)
}
