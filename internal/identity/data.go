package identity

// en_IN flavoured name tables for the builtin provider.

var firstNames = []string{
	"Aarav", "Aditi", "Aditya", "Akash", "Amit", "Ananya", "Anil", "Anjali",
	"Ankit", "Arjun", "Aryan", "Ayesha", "Bhavna", "Chetan", "Darshan", "Deepa",
	"Deepak", "Devika", "Dhruv", "Divya", "Farhan", "Gaurav", "Geeta", "Harish",
	"Ishaan", "Ishita", "Jaya", "Kabir", "Karan", "Kavya", "Kiran", "Krishna",
	"Lakshmi", "Manish", "Meera", "Mohan", "Nandini", "Naveen", "Neha", "Nikhil",
	"Nisha", "Pooja", "Pradeep", "Pranav", "Priya", "Rahul", "Rajesh", "Ramesh",
	"Ravi", "Rekha", "Riya", "Rohan", "Sachin", "Sahil", "Sanjay", "Sara",
	"Shreya", "Siddharth", "Sneha", "Sunil", "Suresh", "Swati", "Tanvi", "Tara",
	"Uday", "Varun", "Vikram", "Vinay", "Vivek", "Yash", "Zara", "Zoya",
}

var lastNames = []string{
	"Agarwal", "Ahluwalia", "Bajwa", "Banerjee", "Bhat", "Bose", "Chandra", "Chauhan",
	"Chopra", "Das", "Desai", "Dutta", "Gandhi", "Ghosh", "Gill", "Goel",
	"Gupta", "Iyer", "Jain", "Joshi", "Kapoor", "Khan", "Kulkarni", "Kumar",
	"Malhotra", "Mehta", "Menon", "Mishra", "Mukherjee", "Nair", "Naidu", "Pandey",
	"Patel", "Pillai", "Rao", "Reddy", "Saxena", "Sen", "Shah", "Sharma",
	"Singh", "Sinha", "Srinivasan", "Thakur", "Tiwari", "Trivedi", "Varma", "Yadav",
}
