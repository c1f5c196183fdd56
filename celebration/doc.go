/*
Package celebration renders animated HTML pages congratulating lottery
winners.

Generate fills an html/template with the winner's application code, quota
category and result details, picking one of several celebration messages at
random. Pages can be persisted to the celebrations directory with a
uuid-based filename for sharing. SharingLinks produces ready-made social
share URLs.
*/
package celebration
